// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents admins and students.
//
// NOTE:
//   - Stream is set for students only; an empty Stream marks an
//     administrator, which is also how the targeting policy recognizes the
//     admin bypass.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin | student
	Stream       string             `bson:"stream,omitempty" json:"stream,omitempty"`

	// Academic profile (students); copied into form-response snapshots.
	RollNumber   string  `bson:"roll_number,omitempty" json:"roll_number,omitempty"`
	RegNumber    string  `bson:"reg_number,omitempty" json:"reg_number,omitempty"`
	MobileNumber string  `bson:"mobile_number,omitempty" json:"mobile_number,omitempty"`
	CGPA         float64 `bson:"cgpa,omitempty" json:"cgpa,omitempty"`
	TenthMarks   float64 `bson:"tenth_marks,omitempty" json:"tenth_marks,omitempty"`
	TwelfthMarks float64 `bson:"twelfth_marks,omitempty" json:"twelfth_marks,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
