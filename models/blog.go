package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog statuses
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Thumbnail   string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Content     string             `bson:"content" json:"content"`
	AuthorEmail string             `bson:"author_email" json:"author_email"`
	Status      string             `bson:"status" json:"status"` // draft, published
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// TogglePublishStatus returns the flipped publish status. The second
// return is false when the current status is neither draft nor
// published, in which case the record must be left untouched.
func TogglePublishStatus(current string) (string, bool) {
	switch current {
	case BlogDraft:
		return BlogPublished, true
	case BlogPublished:
		return BlogDraft, true
	default:
		return "", false
	}
}
