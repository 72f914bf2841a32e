// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session identifies one recruiting/offer cycle by its year pair.
type Session struct {
	StartYear int `bson:"start_year" json:"startYear"`
	EndYear   int `bson:"end_year" json:"endYear"`
}

// Organization includes a case/diacritic-insensitive name for search/sort.
// TargetedStreams scopes which student streams see the organization;
// Sessions lists the offer cycles it recruits in. A session pair may repeat
// across organizations but is expected (not enforced) to be unique within one.
type Organization struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Name            string             `bson:"name" json:"name"`
	NameCI          string             `bson:"name_ci" json:"-"` // ← always stored
	TargetedStreams []string           `bson:"targeted_streams" json:"targetedStreams"`
	Sessions        []Session          `bson:"sessions" json:"sessions"`
	ContactInfo     string             `bson:"contact_info,omitempty" json:"contactInfo,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
