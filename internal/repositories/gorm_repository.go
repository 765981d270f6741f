package repositories

import (
	"context"
	"errors"
	"fmt"

	"profilecard/internal/apperrors"
	"profilecard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRepository is a GORM implementation of ProfileRepository.
// The *gorm.DB must be opened with TranslateError so unique index
// violations surface as gorm.ErrDuplicatedKey.
type GORMRepository[T any, P models.Record[T]] struct {
	db *gorm.DB
}

// NewGORMRepository creates a new instance of GORMRepository.
func NewGORMRepository[T any, P models.Record[T]](db *gorm.DB) *GORMRepository[T, P] {
	return &GORMRepository[T, P]{
		db: db,
	}
}

// GetAll retrieves all records from the database, newest first.
func (r *GORMRepository[T, P]) GetAll(ctx context.Context) ([]T, error) {
	records := make([]T, 0)
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all %s: %w", r.kind(), err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// GetByID retrieves a single record by its ID from the database.
func (r *GORMRepository[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with ID %s: %w", r.kind(), id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by ID %s: %w", r.kind(), id, err)
	}
	return &record, nil
}

// Create creates a new record in the database.
func (r *GORMRepository[T, P]) Create(ctx context.Context, record *T) error {
	base := P(record).GetBase()
	if base.ID == "" {
		base.ID = models.NewID()
	}
	err := r.db.WithContext(ctx).Create(record).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.conflict(ctx, P(record))
	}
	return fmt.Errorf("failed to create %s: %w", r.kind(), err)
}

// conflict works out which unique field a rejected insert collided on.
func (r *GORMRepository[T, P]) conflict(ctx context.Context, record P) error {
	keys := record.UniqueKeys()
	for _, key := range keys {
		var n int64
		err := r.db.WithContext(ctx).Model(new(T)).
			Where(clause.Eq{Column: clause.Column{Name: key.Field}, Value: key.Value}).
			Count(&n).Error
		if err == nil && n > 0 {
			return &apperrors.ConflictError{Field: key.Field, Value: key.Value}
		}
	}
	if len(keys) > 0 {
		return &apperrors.ConflictError{Field: keys[0].Field, Value: keys[0].Value}
	}
	return &apperrors.ConflictError{Field: "id", Value: record.GetBase().ID}
}

func (r *GORMRepository[T, P]) kind() models.Kind {
	var zero T
	return P(&zero).Kind()
}
