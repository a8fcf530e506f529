package service

import (
	"context"
	"errors"
	"strings"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/logger"
	"interntrack/intern-track/internal/repository"
	"interntrack/intern-track/internal/validation"

	"github.com/go-playground/validator/v10"
)

// RegisterStudentInput is a new student's self-registration.
type RegisterStudentInput struct {
	RegisterNumber string `validate:"required,regnum"`
	Name           string `validate:"required"`
	Email          string `validate:"required,email"`
	Password       string `validate:"required,min=6"`
	Batch          string `validate:"required"`
}

// RegisterCoordinatorInput is a new coordinator account.
type RegisterCoordinatorInput struct {
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=6"`
	Name       string `validate:"required"`
	Department string `validate:"required"`
}

// AuthService owns the credential store: it creates principals with hashed
// passwords and exchanges credentials for tokens.
type AuthService interface {
	RegisterStudent(ctx context.Context, in RegisterStudentInput) (*domain.Student, string, error)
	RegisterCoordinator(ctx context.Context, in RegisterCoordinatorInput) (*domain.Coordinator, string, error)
	LoginStudent(ctx context.Context, registerNumber, password string) (*domain.Student, string, error)
	LoginCoordinator(ctx context.Context, email, password string) (*domain.Coordinator, string, error)
}

type authService struct {
	students     repository.StudentRepository
	coordinators repository.CoordinatorRepository
	tokens       TokenService
	validate     *validator.Validate
	bcryptCost   int

	// dummyHash is compared against when the identifier is unknown so both
	// login failures take about as long.
	dummyHash string
}

// NewAuthService creates a new instance of authService.
func NewAuthService(students repository.StudentRepository, coordinators repository.CoordinatorRepository, tokens TokenService, bcryptCost int) AuthService {
	dummy, err := domain.HashPassword("not-a-real-password", bcryptCost)
	if err != nil {
		panic(err)
	}
	return &authService{
		students:     students,
		coordinators: coordinators,
		tokens:       tokens,
		validate:     validation.New(),
		bcryptCost:   bcryptCost,
		dummyHash:    dummy,
	}
}

func normalizeRegisterNumber(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
func normalizeEmail(s string) string          { return strings.ToLower(strings.TrimSpace(s)) }
func normalizeBatch(s string) string          { return strings.ToUpper(strings.TrimSpace(s)) }

func (s *authService) RegisterStudent(ctx context.Context, in RegisterStudentInput) (*domain.Student, string, error) {
	in.RegisterNumber = normalizeRegisterNumber(in.RegisterNumber)
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Batch = normalizeBatch(in.Batch)
	if err := s.validate.Struct(in); err != nil {
		return nil, "", apperrors.Validation(validation.Message(err))
	}

	hash, err := domain.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	student := &domain.Student{
		RegisterNumber: in.RegisterNumber,
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		Batch:          in.Batch,
	}
	if _, err := s.students.Create(ctx, student); err != nil {
		return nil, "", duplicateOr(err)
	}

	token, err := s.tokens.Issue(student.ID, domain.KindStudent)
	if err != nil {
		return nil, "", err
	}
	logger.Info().Str("studentId", student.ID.Hex()).Str("batch", student.Batch).Msg("Student registered")
	return student, token, nil
}

func (s *authService) RegisterCoordinator(ctx context.Context, in RegisterCoordinatorInput) (*domain.Coordinator, string, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Department = strings.TrimSpace(in.Department)
	if err := s.validate.Struct(in); err != nil {
		return nil, "", apperrors.Validation(validation.Message(err))
	}

	hash, err := domain.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	coordinator := &domain.Coordinator{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Department:   in.Department,
	}
	if _, err := s.coordinators.Create(ctx, coordinator); err != nil {
		return nil, "", duplicateOr(err)
	}

	token, err := s.tokens.Issue(coordinator.ID, domain.KindCoordinator)
	if err != nil {
		return nil, "", err
	}
	logger.Info().Str("coordinatorId", coordinator.ID.Hex()).Msg("Coordinator registered")
	return coordinator, token, nil
}

// LoginStudent authenticates by register number. An unknown register number
// and a wrong password produce the same error.
func (s *authService) LoginStudent(ctx context.Context, registerNumber, password string) (*domain.Student, string, error) {
	registerNumber = normalizeRegisterNumber(registerNumber)
	if registerNumber == "" || password == "" {
		return nil, "", apperrors.Validation("Register number and password are required")
	}

	student, err := s.students.GetByRegisterNumber(ctx, registerNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			domain.ComparePassword(s.dummyHash, password)
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !student.ComparePassword(password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(student.ID, domain.KindStudent)
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

// LoginCoordinator authenticates by email.
func (s *authService) LoginCoordinator(ctx context.Context, email, password string) (*domain.Coordinator, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", apperrors.Validation("Email and password are required")
	}

	coordinator, err := s.coordinators.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			domain.ComparePassword(s.dummyHash, password)
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !coordinator.ComparePassword(password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(coordinator.ID, domain.KindCoordinator)
	if err != nil {
		return nil, "", err
	}
	return coordinator, token, nil
}

// duplicateOr maps a repository duplicate-key error to a user-facing one.
func duplicateOr(err error) error {
	if !errors.Is(err, repository.ErrDuplicateKey) {
		return err
	}
	switch field := repository.DuplicateField(err); field {
	case "registerNumber":
		return apperrors.Duplicate(field, "Register number already exists")
	case "email":
		return apperrors.Duplicate(field, "Email already exists")
	default:
		return apperrors.Duplicate(field, "Record already exists")
	}
}
