package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a principal that submits internship records.
type Student struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RegisterNumber string             `bson:"registerNumber" json:"registerNumber"` // unique, upper case
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`    // unique, lower case
	PasswordHash   string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Batch          string             `bson:"batch" json:"batch"`    // upper case
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComparePassword reports whether candidate matches the stored hash.
func (s *Student) ComparePassword(candidate string) bool {
	return ComparePassword(s.PasswordHash, candidate)
}

// StudentProfile holds the only student fields that may change after registration.
type StudentProfile struct {
	Name  string
	Email string
	Batch string
}
