package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles
const (
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// Account statuses
const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"` // unique key
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Blood     string             `bson:"blood" json:"blood"`
	Division  string             `bson:"division" json:"division"`
	District  string             `bson:"district" json:"district"`
	Password  string             `bson:"password,omitempty" json:"password,omitempty"` // opaque, never interpreted server-side
	Role      string             `bson:"role" json:"role"`     // donor, volunteer, admin
	Status    string             `bson:"status" json:"status"` // active, blocked
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
