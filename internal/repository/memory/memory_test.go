package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repository.StudentRepository     = (*StudentRepository)(nil)
	_ repository.CoordinatorRepository = (*CoordinatorRepository)(nil)
	_ repository.InternshipRepository  = (*InternshipRepository)(nil)
)

func TestStudentRepository_UniqueKeys(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()

	if _, err := repo.Create(ctx, &domain.Student{RegisterNumber: "CS2021001", Email: "a@x.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := repo.Create(ctx, &domain.Student{RegisterNumber: "CS2021001", Email: "other@x.com", PasswordHash: "h"})
	if !errors.Is(err, repository.ErrDuplicateKey) || repository.DuplicateField(err) != "registerNumber" {
		t.Errorf("same register number: err = %v", err)
	}

	_, err = repo.Create(ctx, &domain.Student{RegisterNumber: "CS2021002", Email: "a@x.com", PasswordHash: "h"})
	if repository.DuplicateField(err) != "email" {
		t.Errorf("same email: err = %v", err)
	}
}

func TestStudentRepository_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()
	a := &domain.Student{RegisterNumber: "CS2021001", Email: "a@x.com", PasswordHash: "hash-a"}
	b := &domain.Student{RegisterNumber: "CS2021002", Email: "b@x.com", PasswordHash: "hash-b"}
	for _, s := range []*domain.Student{a, b} {
		if _, err := repo.Create(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	updated, err := repo.UpdateProfile(ctx, a.ID, domain.StudentProfile{Name: "New", Email: "new@x.com", Batch: "2022"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.PasswordHash != "hash-a" || updated.RegisterNumber != "CS2021001" {
		t.Errorf("immutable fields changed: %+v", updated)
	}
	if _, err := repo.UpdateProfile(ctx, a.ID, domain.StudentProfile{Email: "b@x.com"}); repository.DuplicateField(err) != "email" {
		t.Errorf("taking b's email: err = %v", err)
	}
	if _, err := repo.UpdateProfile(ctx, primitive.NewObjectID(), domain.StudentProfile{}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown id: err = %v", err)
	}
}

func TestInternshipRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewInternshipRepository()
	owner := primitive.NewObjectID()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Internship{StudentID: owner, RegisterNumber: "CS2021001", DocumentPath: "p"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !errors.Is(err, repository.ErrDuplicateKey):
			t.Errorf("unexpected error %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", succeeded)
	}

	list, _ := repo.List(ctx, repository.InternshipFilter{StudentID: owner})
	if len(list) != 1 {
		t.Errorf("len(List) = %d, want 1", len(list))
	}
}
