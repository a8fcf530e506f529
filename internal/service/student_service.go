package service

import (
	"context"
	"strings"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/repository"
	"interntrack/intern-track/internal/validation"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateStudentInput replaces a student's editable profile fields.
type UpdateStudentInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Batch string `validate:"required"`
}

// StudentService covers a student's view of their own account.
type StudentService interface {
	GetDetails(ctx context.Context, studentID primitive.ObjectID) (*domain.Student, error)
	UpdateDetails(ctx context.Context, studentID primitive.ObjectID, in UpdateStudentInput) (*domain.Student, error)
}

type studentService struct {
	students repository.StudentRepository
	validate *validator.Validate
}

func NewStudentService(students repository.StudentRepository) StudentService {
	return &studentService{students: students, validate: validation.New()}
}

func (s *studentService) GetDetails(ctx context.Context, studentID primitive.ObjectID) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return student, nil
}

// UpdateDetails never touches the password hash or register number.
func (s *studentService) UpdateDetails(ctx context.Context, studentID primitive.ObjectID, in UpdateStudentInput) (*domain.Student, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Batch = normalizeBatch(in.Batch)
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.Validation(validation.Message(err))
	}

	student, err := s.students.UpdateProfile(ctx, studentID, domain.StudentProfile{
		Name:  in.Name,
		Email: in.Email,
		Batch: in.Batch,
	})
	if err != nil {
		return nil, duplicateOr(notFoundOr(err))
	}
	return student, nil
}
