package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Internship is one student's submission. RegisterNumber is globally unique
// across records and DocumentPath is relative to the documents root.
type Internship struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID          primitive.ObjectID `bson:"studentId" json:"studentId"`
	Batch              string             `bson:"batch" json:"batch"`
	RegisterNumber     string             `bson:"registerNumber" json:"registerNumber"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	MobileNumber       string             `bson:"mobileNumber" json:"mobileNumber"`
	CompanyName        string             `bson:"companyName" json:"companyName"`
	DurationWeeks      int                `bson:"durationWeeks" json:"durationWeeks"`
	Stipend            *float64           `bson:"stipend,omitempty" json:"stipend,omitempty"`
	ObtainedThroughCDC bool               `bson:"obtainedThroughCDC" json:"obtainedThroughCDC"`
	InternshipAbroad   bool               `bson:"internshipAbroad" json:"internshipAbroad"`
	DocumentPath       string             `bson:"documentPath" json:"documentPath"`
	DocumentSize       int64              `bson:"documentSize" json:"documentSize"`
	DocumentType       string             `bson:"documentType" json:"documentType"`
	DocumentDigest     string             `bson:"documentDigest" json:"documentDigest"` // BLAKE3, hex
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}
