// Package memory holds map-backed repositories with the same unique-key
// semantics as the Mongo ones. Each store is safe for concurrent use.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudentRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]domain.Student
	byRegNo map[string]primitive.ObjectID
	byEmail map[string]primitive.ObjectID
}

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		byID:    map[primitive.ObjectID]domain.Student{},
		byRegNo: map[string]primitive.ObjectID{},
		byEmail: map[string]primitive.ObjectID{},
	}
}

func (r *StudentRepository) Create(_ context.Context, student *domain.Student) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byRegNo[student.RegisterNumber]; ok {
		return primitive.NilObjectID, &repository.DuplicateKeyError{Field: "registerNumber"}
	}
	if _, ok := r.byEmail[student.Email]; ok {
		return primitive.NilObjectID, &repository.DuplicateKeyError{Field: "email"}
	}

	student.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	r.byID[student.ID] = *student
	r.byRegNo[student.RegisterNumber] = student.ID
	r.byEmail[student.Email] = student.ID
	return student.ID, nil
}

func (r *StudentRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *StudentRepository) GetByRegisterNumber(ctx context.Context, registerNumber string) (*domain.Student, error) {
	r.mu.RLock()
	id, ok := r.byRegNo[registerNumber]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *StudentRepository) UpdateProfile(_ context.Context, id primitive.ObjectID, profile domain.StudentProfile) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if owner, taken := r.byEmail[profile.Email]; taken && owner != id {
		return nil, &repository.DuplicateKeyError{Field: "email"}
	}

	delete(r.byEmail, s.Email)
	s.Name = profile.Name
	s.Email = profile.Email
	s.Batch = profile.Batch
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	r.byEmail[s.Email] = id
	return &s, nil
}

// Delete removes a student, leaving any issued tokens dangling. Nothing in
// the server deletes students; tests use it to simulate a revoked principal
// whose token still verifies.
func (r *StudentRepository) Delete(id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byID[id]; ok {
		delete(r.byRegNo, s.RegisterNumber)
		delete(r.byEmail, s.Email)
		delete(r.byID, id)
	}
}

type CoordinatorRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]domain.Coordinator
	byEmail map[string]primitive.ObjectID
}

func NewCoordinatorRepository() *CoordinatorRepository {
	return &CoordinatorRepository{
		byID:    map[primitive.ObjectID]domain.Coordinator{},
		byEmail: map[string]primitive.ObjectID{},
	}
}

func (r *CoordinatorRepository) Create(_ context.Context, coordinator *domain.Coordinator) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[coordinator.Email]; ok {
		return primitive.NilObjectID, &repository.DuplicateKeyError{Field: "email"}
	}

	coordinator.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	coordinator.CreatedAt = now
	coordinator.UpdatedAt = now

	r.byID[coordinator.ID] = *coordinator
	r.byEmail[coordinator.Email] = coordinator.ID
	return coordinator.ID, nil
}

func (r *CoordinatorRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Coordinator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *CoordinatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Coordinator, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

type InternshipRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]domain.Internship
	byRegNo map[string]primitive.ObjectID
}

func NewInternshipRepository() *InternshipRepository {
	return &InternshipRepository{
		byID:    map[primitive.ObjectID]domain.Internship{},
		byRegNo: map[string]primitive.ObjectID{},
	}
}

func (r *InternshipRepository) Create(_ context.Context, internship *domain.Internship) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byRegNo[internship.RegisterNumber]; ok {
		return primitive.NilObjectID, &repository.DuplicateKeyError{Field: "registerNumber"}
	}

	internship.ID = primitive.NewObjectID()
	internship.CreatedAt = time.Now().UTC()
	r.byID[internship.ID] = *internship
	r.byRegNo[internship.RegisterNumber] = internship.ID
	return internship.ID, nil
}

func (r *InternshipRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Internship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *InternshipRepository) List(_ context.Context, filter repository.InternshipFilter) ([]domain.Internship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Internship{}
	for _, rec := range r.byID {
		if filter.StudentID != primitive.NilObjectID && rec.StudentID != filter.StudentID {
			continue
		}
		if filter.Batch != "" && rec.Batch != filter.Batch {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
