package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coordinator reviews submissions across the cohort.
type Coordinator struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // unique, lower case
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Department   string             `bson:"department" json:"department"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (c *Coordinator) ComparePassword(candidate string) bool {
	return ComparePassword(c.PasswordHash, candidate)
}
