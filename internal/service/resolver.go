package service

import (
	"context"
	"errors"
	"fmt"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrincipalResolver turns a bearer token into the principal it names.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (domain.Principal, error)
	Load(ctx context.Context, kind domain.Kind, id primitive.ObjectID) (domain.Principal, error)
}

type principalResolver struct {
	tokens       TokenService
	students     repository.StudentRepository
	coordinators repository.CoordinatorRepository
}

func NewPrincipalResolver(tokens TokenService, students repository.StudentRepository, coordinators repository.CoordinatorRepository) PrincipalResolver {
	return &principalResolver{tokens: tokens, students: students, coordinators: coordinators}
}

// Resolve verifies the token and loads the principal from the partition
// named by its kind. Tokens without a recognized kind are looked up as a
// student first, then as a coordinator; that path only exists for tokens
// minted before kinds were tagged.
func (r *principalResolver) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		return domain.Principal{}, err
	}

	if claims.Kind != "" {
		return r.Load(ctx, claims.Kind, claims.ID)
	}

	p, err := r.Load(ctx, domain.KindStudent, claims.ID)
	if !errors.Is(err, apperrors.ErrNotFound) {
		return p, err
	}
	return r.Load(ctx, domain.KindCoordinator, claims.ID)
}

// Load finds a principal by kind and id. A missing record unwraps to
// apperrors.ErrNotFound.
func (r *principalResolver) Load(ctx context.Context, kind domain.Kind, id primitive.ObjectID) (domain.Principal, error) {
	switch kind {
	case domain.KindStudent:
		s, err := r.students.GetByID(ctx, id)
		if err != nil {
			return domain.Principal{}, notFoundOr(err)
		}
		return domain.StudentPrincipal(s), nil
	case domain.KindCoordinator:
		c, err := r.coordinators.GetByID(ctx, id)
		if err != nil {
			return domain.Principal{}, notFoundOr(err)
		}
		return domain.CoordinatorPrincipal(c), nil
	}
	return domain.Principal{}, fmt.Errorf("%w: unknown principal kind %q", apperrors.ErrUnauthenticated, kind)
}

// Authorize checks that p is of the kind a route requires.
func Authorize(p domain.Principal, required domain.Kind) error {
	if !p.Is(required) {
		return apperrors.ErrForbidden
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Principal not found")
	}
	return err
}
