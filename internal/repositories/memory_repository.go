package repositories

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"profilecard/internal/apperrors"
	"profilecard/internal/models"
)

// MemoryRepository is an in-memory implementation of ProfileRepository.
type MemoryRepository[T any, P models.Record[T]] struct {
	mu      sync.RWMutex
	records []T
	byID    map[string]int
	// unique maps field -> value -> record id.
	unique map[string]map[string]string
}

// NewMemoryRepository creates a new, empty MemoryRepository.
func NewMemoryRepository[T any, P models.Record[T]]() *MemoryRepository[T, P] {
	return &MemoryRepository[T, P]{
		byID:   make(map[string]int),
		unique: make(map[string]map[string]string),
	}
}

// GetAll returns all records, newest first.
func (r *MemoryRepository[T, P]) GetAll(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]T, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		list = append(list, r.records[i])
	}
	slices.SortStableFunc(list, func(a, b T) int {
		return P(&b).GetBase().CreatedAt.Compare(P(&a).GetBase().CreatedAt)
	})
	return list, nil
}

// GetByID returns a record by its ID.
func (r *MemoryRepository[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		var zero T
		return nil, fmt.Errorf("%s with ID %s: %w", P(&zero).Kind(), id, apperrors.ErrNotFound)
	}
	record := r.records[i]
	return &record, nil
}

// Create adds a new record. Unique fields are checked under the write lock.
func (r *MemoryRepository[T, P]) Create(ctx context.Context, record *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := P(record)
	id := p.GetBase().ID
	if id == "" {
		id = models.NewID()
		p.GetBase().ID = id
	}
	if _, exists := r.byID[id]; exists {
		return &apperrors.ConflictError{Field: "id", Value: id}
	}

	keys := p.UniqueKeys()
	for _, key := range keys {
		if _, taken := r.unique[key.Field][key.Value]; taken {
			return &apperrors.ConflictError{Field: key.Field, Value: key.Value}
		}
	}
	for _, key := range keys {
		if r.unique[key.Field] == nil {
			r.unique[key.Field] = make(map[string]string)
		}
		r.unique[key.Field][key.Value] = id
	}

	r.byID[id] = len(r.records)
	r.records = append(r.records, *record)
	return nil
}
