package services

import (
	"context"
	"fmt"

	"profilecard/internal/apperrors"
	"profilecard/internal/metrics"
	"profilecard/internal/models"
	"profilecard/internal/repositories"
	"profilecard/internal/validation"
	"profilecard/pkg/rabbitmq"

	"go.uber.org/zap"
)

// EventPublisher publishes profile lifecycle events.
type EventPublisher interface {
	PublishProfileCreated(event rabbitmq.ProfileEvent) error
}

// Dependencies are shared by the services of every profile kind.
type Dependencies struct {
	Validator *validation.Validator
	// Publisher may be nil, in which case no events are sent.
	Publisher EventPublisher
	Clock     *Clock
	Logger    *zap.Logger
}

// ProfileService handles business logic for one profile kind.
type ProfileService[T any, P models.Record[T]] struct {
	repo      repositories.ProfileRepository[T]
	validator *validation.Validator
	publisher EventPublisher
	clock     *Clock
	logger    *zap.Logger
}

// NewProfileService creates a new ProfileService over repo.
func NewProfileService[T any, P models.Record[T]](repo repositories.ProfileRepository[T], deps Dependencies) *ProfileService[T, P] {
	if deps.Validator == nil {
		deps.Validator = validation.New(0)
	}
	if deps.Clock == nil {
		deps.Clock = NewClock(nil)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &ProfileService[T, P]{
		repo:      repo,
		validator: deps.Validator,
		publisher: deps.Publisher,
		clock:     deps.Clock,
		logger:    deps.Logger,
	}
}

// Kind reports the profile kind served.
func (s *ProfileService[T, P]) Kind() models.Kind {
	var zero T
	return P(&zero).Kind()
}

// GetAll retrieves every profile of the kind, newest first.
func (s *ProfileService[T, P]) GetAll(ctx context.Context) ([]T, error) {
	return s.repo.GetAll(ctx)
}

// GetByID retrieves one profile. Malformed ids fail with apperrors.ErrInvalidID.
func (s *ProfileService[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	if err := models.ParseID(id); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidID, err)
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates an untyped submission and persists it with a fresh id and
// timestamp. Nothing is written when any check fails.
func (s *ProfileService[T, P]) Create(ctx context.Context, input map[string]any) (*T, error) {
	record, err := decodeInput[T](input)
	if err != nil {
		return nil, err
	}

	p := P(record)
	p.Normalize()
	if err := s.validator.Struct(record); err != nil {
		return nil, err
	}

	base := p.GetBase()
	base.ID = models.NewID()
	base.CreatedAt = s.clock.Now()

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.Kind(), err)
	}

	metrics.ProfilesCreated.WithLabelValues(string(s.Kind())).Inc()
	s.logger.Info("profile created", zap.String("kind", string(s.Kind())), zap.String("id", base.ID))
	s.publishCreated(base)
	return record, nil
}

// publishCreated is best effort: the profile is already stored.
func (s *ProfileService[T, P]) publishCreated(base *models.Base) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.ProfileEvent{
		Type:      "profile.created",
		Kind:      string(s.Kind()),
		ID:        base.ID,
		CreatedAt: base.CreatedAt,
	}
	if err := s.publisher.PublishProfileCreated(event); err != nil {
		metrics.EventPublishErrors.Inc()
		s.logger.Warn("failed to publish profile event",
			zap.String("kind", event.Kind), zap.String("id", event.ID), zap.Error(err))
	}
}
