package service

import (
	"context"
	"errors"
	"testing"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

func TestResolve_ByKind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s, studentToken := env.registerStudent(t, "CS2021001")
	c, coordToken := env.registerCoordinator(t, "head@college.edu")

	p, err := env.resolver.Resolve(ctx, studentToken)
	if err != nil {
		t.Fatalf("Resolve student: %v", err)
	}
	if !p.Is(domain.KindStudent) || p.ID() != s.ID {
		t.Errorf("principal = %+v", p)
	}

	p, err = env.resolver.Resolve(ctx, coordToken)
	if err != nil {
		t.Fatalf("Resolve coordinator: %v", err)
	}
	if !p.Is(domain.KindCoordinator) || p.ID() != c.ID || p.Is(domain.KindStudent) {
		t.Errorf("principal = %+v", p)
	}
}

func TestResolve_KindTaggedLookupDoesNotCrossPartitions(t *testing.T) {
	env := newTestEnv(t)
	s, _ := env.registerStudent(t, "CS2021001")

	// A coordinator-tagged token carrying a student's id must not find the student.
	token, _ := env.tokens.Issue(s.ID, domain.KindCoordinator)
	_, err := env.resolver.Resolve(context.Background(), token)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolve_UntaggedFallsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s, _ := env.registerStudent(t, "CS2021001")
	c, _ := env.registerCoordinator(t, "head@college.edu")

	sign := func(claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatal(err)
		}
		return token
	}

	p, err := env.resolver.Resolve(ctx, sign(jwt.MapClaims{"_id": s.ID.Hex()}))
	if err != nil || !p.Is(domain.KindStudent) {
		t.Fatalf("student fallback = %+v, %v", p, err)
	}
	p, err = env.resolver.Resolve(ctx, sign(jwt.MapClaims{"id": c.ID.Hex(), "role": "admin"}))
	if err != nil || !p.Is(domain.KindCoordinator) {
		t.Fatalf("coordinator fallback = %+v, %v", p, err)
	}
}

func TestResolve_Failures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s, token := env.registerStudent(t, "CS2021001")

	if _, err := env.resolver.Resolve(ctx, "garbage"); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("garbage err = %v, want ErrUnauthenticated", err)
	}

	env.students.Delete(s.ID)
	_, err := env.resolver.Resolve(ctx, token)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("deleted principal err = %v, want ErrNotFound", err)
	}
	if msg := apperrors.Message(err, ""); msg != "Principal not found" {
		t.Errorf("deleted principal message = %q", msg)
	}
}

func TestAuthorize(t *testing.T) {
	student := domain.StudentPrincipal(&domain.Student{})
	coordinator := domain.CoordinatorPrincipal(&domain.Coordinator{})

	if err := Authorize(student, domain.KindStudent); err != nil {
		t.Errorf("student as student: %v", err)
	}
	if err := Authorize(coordinator, domain.KindStudent); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("coordinator as student: %v", err)
	}
	if err := Authorize(domain.Principal{}, domain.KindCoordinator); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("zero principal: %v", err)
	}
}
