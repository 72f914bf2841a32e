// internal/domain/models/posting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Posting is a distributable content item tied to an organization and an
// offer session. Organization is stored by name, matching how feeds are
// queried. Content is sanitized HTML.
type Posting struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Content         string             `bson:"content" json:"content"`
	Organization    string             `bson:"organization" json:"organization"`
	Session         Session            `bson:"session" json:"session"`
	TargetedStreams []string           `bson:"targeted_streams" json:"targetedStreams"`
	CreatedBy       primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
