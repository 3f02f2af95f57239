package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		patch DonationRequestPatch
		want  patchKind
	}{
		{
			name:  "status alone is a status change",
			patch: DonationRequestPatch{Status: "inprogress"},
			want:  patchStatusChange,
		},
		{
			name: "full donor triplet is an assignment",
			patch: DonationRequestPatch{
				Status:     "inprogress",
				DonorName:  "Rahim",
				DonorEmail: "rahim@example.com",
			},
			want: patchDonorAssignment,
		},
		{
			name:  "donor name without email stays a status change",
			patch: DonationRequestPatch{Status: "inprogress", DonorName: "Rahim"},
			want:  patchStatusChange,
		},
		{
			name:  "donor email without name stays a status change",
			patch: DonationRequestPatch{Status: "inprogress", DonorEmail: "rahim@example.com"},
			want:  patchStatusChange,
		},
		{
			name:  "donor pair without status is a field edit attempt, not an assignment",
			patch: DonationRequestPatch{DonorName: "Rahim", DonorEmail: "rahim@example.com"},
			want:  patchInvalid,
		},
		{
			name:  "descriptive fields are a field edit",
			patch: DonationRequestPatch{Hospital: "Dhaka Medical", Address: "Secretariat Rd"},
			want:  patchFieldEdit,
		},
		{
			name:  "empty body is invalid",
			patch: DonationRequestPatch{},
			want:  patchInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Classify())
		})
	}
}

func TestStatusUpdateTouchesOnlyStatus(t *testing.T) {
	now := time.Now()
	patch := DonationRequestPatch{Status: "inprogress", Hospital: "should be ignored"}

	update := patch.statusUpdate(now)

	assert.Len(t, update, 2)
	assert.Equal(t, "inprogress", update["status"])
	assert.Equal(t, now, update["updated_at"])
}

func TestDonorUpdateIsAtomicTriplet(t *testing.T) {
	now := time.Now()
	patch := DonationRequestPatch{
		Status:     "inprogress",
		DonorName:  "Rahim",
		DonorEmail: "rahim@example.com",
	}

	update := patch.donorUpdate(now)

	assert.Len(t, update, 4)
	assert.Equal(t, "Rahim", update["donor_name"])
	assert.Equal(t, "rahim@example.com", update["donor_email"])
	assert.Equal(t, "inprogress", update["status"])
}

func TestFieldUpdateNeverTouchesStatusOrDonor(t *testing.T) {
	now := time.Now()
	patch := DonationRequestPatch{
		RequesterName: "Karim",
		Hospital:      "Dhaka Medical",
		Description:   "urgent",
	}

	update := patch.fieldUpdate(now)

	assert.Equal(t, "Karim", update["requester_name"])
	assert.Equal(t, "Dhaka Medical", update["hospital"])
	assert.Equal(t, "urgent", update["description"])
	assert.NotContains(t, update, "status")
	assert.NotContains(t, update, "donor_name")
	assert.NotContains(t, update, "donor_email")
	assert.NotContains(t, update, "requester_email", "unset fields are left alone")
}
