package repositories

import "context"

// ProfileRepository defines data access for one profile kind.
// Implementations enforce the kind's unique fields and report violations as
// *apperrors.ConflictError.
type ProfileRepository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, record *T) error
}
