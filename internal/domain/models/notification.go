// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is one ledger entry per (posting, recipient) pair. Content is a
// snapshot taken at fan-out time so the entry stays renderable even while the
// posting is being edited. An entry is only meaningful while its posting
// exists; posting deletion cascades here.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	PostingID   primitive.ObjectID `bson:"posting_id" json:"postingId"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipientId"`
	Content     string             `bson:"content" json:"content"`
	Read        bool               `bson:"read" json:"read"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
