// internal/domain/models/formresponse.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmitterProfile is the snapshot of the submitter's academic profile copied
// into a form response at submission time.
type SubmitterProfile struct {
	FullName     string  `bson:"full_name" json:"fullName"`
	RollNumber   string  `bson:"roll_number,omitempty" json:"rollNumber,omitempty"`
	RegNumber    string  `bson:"reg_number,omitempty" json:"regNumber,omitempty"`
	Email        string  `bson:"email" json:"email"`
	MobileNumber string  `bson:"mobile_number,omitempty" json:"mobileNumber,omitempty"`
	CGPA         float64 `bson:"cgpa,omitempty" json:"cgpa,omitempty"`
	TenthMarks   float64 `bson:"tenth_marks,omitempty" json:"tenthMarks,omitempty"`
	TwelfthMarks float64 `bson:"twelfth_marks,omitempty" json:"twelfthMarks,omitempty"`
}

// FormResponse records one submission of a posting's form. At most one
// response may exist per (posting, user) pair; the form_responses collection
// carries a unique index on those two fields and inserts rely on it rather
// than on a prior existence check.
type FormResponse struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	PostingID   primitive.ObjectID `bson:"posting_id" json:"postingId"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Answers     map[string]any     `bson:"answers" json:"answers"`
	Profile     SubmitterProfile   `bson:"profile" json:"profile"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submittedAt"`
}
