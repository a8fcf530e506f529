package repository

import (
	"context"
	"errors"
	"fmt"

	"interntrack/intern-track/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// DuplicateKeyError names the unique field that rejected a write.
// It matches ErrDuplicateKey under errors.Is.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return string(ErrDuplicateKey)
	}
	return fmt.Sprintf("duplicate key on %s", e.Field)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// DuplicateField returns the field of a DuplicateKeyError, or "".
func DuplicateField(err error) string {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup.Field
	}
	return ""
}

// StudentRepository persists student principals. RegisterNumber and Email are unique.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error)
	GetByRegisterNumber(ctx context.Context, registerNumber string) (*domain.Student, error)
	// UpdateProfile touches name, email and batch only; the password hash is never rewritten.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.StudentProfile) (*domain.Student, error)
}

// CoordinatorRepository persists coordinator principals. Email is unique.
type CoordinatorRepository interface {
	Create(ctx context.Context, coordinator *domain.Coordinator) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coordinator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Coordinator, error)
}

// InternshipFilter narrows a listing. Zero values match everything.
type InternshipFilter struct {
	StudentID primitive.ObjectID
	Batch     string
}

// InternshipRepository persists internship records. RegisterNumber is unique.
type InternshipRepository interface {
	Create(ctx context.Context, internship *domain.Internship) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Internship, error)
	// List returns matching records, newest first.
	List(ctx context.Context, filter InternshipFilter) ([]domain.Internship, error)
}
