package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation request statuses
const (
	RequestPending    = "pending"
	RequestInProgress = "inprogress"
	RequestDone       = "done"
	RequestCanceled   = "canceled"
)

type DonationRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequesterName  string             `bson:"requester_name" json:"requester_name"`
	RequesterEmail string             `bson:"requester_email" json:"requester_email"`
	District       string             `bson:"district" json:"district"`
	Upazilla       string             `bson:"upazilla" json:"upazilla"`
	RecipientName  string             `bson:"recipient_name" json:"recipient_name"`
	Hospital       string             `bson:"hospital" json:"hospital"`
	Address        string             `bson:"address" json:"address"`
	Date           string             `bson:"date" json:"date"`
	Time           string             `bson:"time" json:"time"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	DonorName      string             `bson:"donor_name,omitempty" json:"donor_name,omitempty"`
	DonorEmail     string             `bson:"donor_email,omitempty" json:"donor_email,omitempty"`
	Status         string             `bson:"status" json:"status"` // pending, inprogress, done, canceled
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// requestTransitions is the legal status graph. done and canceled are
// terminal.
var requestTransitions = map[string][]string{
	RequestPending:    {RequestInProgress, RequestCanceled},
	RequestInProgress: {RequestDone, RequestCanceled},
	RequestDone:       {},
	RequestCanceled:   {},
}

// ValidRequestStatus reports whether s is part of the status vocabulary.
func ValidRequestStatus(s string) bool {
	_, ok := requestTransitions[s]
	return ok
}

// CanTransition reports whether a donation request may move from one
// status to another.
func CanTransition(from, to string) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
