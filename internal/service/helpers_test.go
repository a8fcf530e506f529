package service

import (
	"context"
	"testing"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/repository/memory"

	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	students     *memory.StudentRepository
	coordinators *memory.CoordinatorRepository
	tokens       TokenService
	auth         AuthService
	resolver     PrincipalResolver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		students:     memory.NewStudentRepository(),
		coordinators: memory.NewCoordinatorRepository(),
		tokens:       NewTokenService(testSecret, 0),
	}
	env.auth = NewAuthService(env.students, env.coordinators, env.tokens, bcrypt.MinCost)
	env.resolver = NewPrincipalResolver(env.tokens, env.students, env.coordinators)
	return env
}

func (e *testEnv) registerStudent(t *testing.T, regNo string) (*domain.Student, string) {
	t.Helper()
	s, token, err := e.auth.RegisterStudent(context.Background(), RegisterStudentInput{
		RegisterNumber: regNo,
		Name:           "Student " + regNo,
		Email:          regNo + "@college.edu",
		Password:       "secret1",
		Batch:          "2021",
	})
	if err != nil {
		t.Fatalf("RegisterStudent(%s): %v", regNo, err)
	}
	return s, token
}

func (e *testEnv) registerCoordinator(t *testing.T, email string) (*domain.Coordinator, string) {
	t.Helper()
	c, token, err := e.auth.RegisterCoordinator(context.Background(), RegisterCoordinatorInput{
		Email:      email,
		Password:   "secret1",
		Name:       "Coordinator",
		Department: "CSE",
	})
	if err != nil {
		t.Fatalf("RegisterCoordinator(%s): %v", email, err)
	}
	return c, token
}
