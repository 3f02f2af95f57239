package controllers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// DonationRequestPatch is the PATCH body for a donation request. The
// body is classified into exactly one variant before anything is
// written; ambiguous or empty bodies are rejected instead of falling
// through.
type DonationRequestPatch struct {
	Status     string `json:"status"`
	DonorName  string `json:"donor_name"`
	DonorEmail string `json:"donor_email"`

	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	District       string `json:"district"`
	Upazilla       string `json:"upazilla"`
	RecipientName  string `json:"recipient_name"`
	Hospital       string `json:"hospital"`
	Address        string `json:"address"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Description    string `json:"description"`
}

type patchKind int

const (
	patchInvalid patchKind = iota
	patchStatusChange
	patchDonorAssignment
	patchFieldEdit
)

// Classify decides which variant a patch body is. Donor assignment
// needs the full donor_name + donor_email + status triplet; a partial
// triplet never touches the donor fields. A bare status is a status
// change. Anything else is a descriptive-field edit, rejected when
// empty.
func (p DonationRequestPatch) Classify() patchKind {
	if p.Status != "" {
		if p.DonorName != "" && p.DonorEmail != "" {
			return patchDonorAssignment
		}
		return patchStatusChange
	}
	if p.hasFieldEdit() {
		return patchFieldEdit
	}
	return patchInvalid
}

func (p DonationRequestPatch) hasFieldEdit() bool {
	return p.RequesterName != "" || p.RequesterEmail != "" || p.District != "" ||
		p.Upazilla != "" || p.RecipientName != "" || p.Hospital != "" ||
		p.Address != "" || p.Date != "" || p.Time != "" || p.Description != ""
}

// statusUpdate touches nothing but the status.
func (p DonationRequestPatch) statusUpdate(now time.Time) bson.M {
	return bson.M{"status": p.Status, "updated_at": now}
}

// donorUpdate commits the donor identity and the status as one atomic
// field group.
func (p DonationRequestPatch) donorUpdate(now time.Time) bson.M {
	return bson.M{
		"donor_name":  p.DonorName,
		"donor_email": p.DonorEmail,
		"status":      p.Status,
		"updated_at":  now,
	}
}

// fieldUpdate overwrites the descriptive fields that were supplied,
// never the status or donor fields.
func (p DonationRequestPatch) fieldUpdate(now time.Time) bson.M {
	update := bson.M{"updated_at": now}
	set := func(key, val string) {
		if val != "" {
			update[key] = val
		}
	}
	set("requester_name", p.RequesterName)
	set("requester_email", p.RequesterEmail)
	set("district", p.District)
	set("upazilla", p.Upazilla)
	set("recipient_name", p.RecipientName)
	set("hospital", p.Hospital)
	set("address", p.Address)
	set("date", p.Date)
	set("time", p.Time)
	set("description", p.Description)
	return update
}
