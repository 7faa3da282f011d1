package posters

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

// PosterRepository defines the persistence surface required by the posters service.
type PosterRepository interface {
	WithTx(tx *gorm.DB) PosterRepository
	Create(ctx context.Context, poster *models.Poster) (*models.Poster, error)
	Update(ctx context.Context, poster *models.Poster) (*models.Poster, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Poster, error)
	List(ctx context.Context) ([]models.Poster, error)
	ListActive(ctx context.Context, at time.Time) ([]models.Poster, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes poster management plus the public storefront feed.
type Service interface {
	Create(ctx context.Context, input Input) (*models.Poster, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Poster, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Poster, error)
	List(ctx context.Context) ([]models.Poster, error)
	ListPublic(ctx context.Context) ([]models.Poster, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo PosterRepository
	now  func() time.Time
}

// NewService builds a posters service backed by the provided repository.
func NewService(repo PosterRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("posters repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Input captures the payload for creating or replacing a poster.
type Input struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	ImageURL    string     `json:"image_url" validate:"required"`
	Type        string     `json:"type" validate:"required"`
	Priority    string     `json:"priority,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

func (s *service) Create(ctx context.Context, input Input) (*models.Poster, error) {
	poster, err := fromInput(input, &models.Poster{})
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, poster)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create poster")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Poster, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	poster, err := fromInput(input, existing)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, poster)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update poster")
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Poster, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Poster, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posters")
	}
	return rows, nil
}

// ListPublic returns the posters currently visible on the storefront,
// highest priority first, newest first within the same priority.
func (s *service) ListPublic(ctx context.Context) ([]models.Poster, error) {
	rows, err := s.repo.ListActive(ctx, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active posters")
	}
	sort.SliceStable(rows, func(i, j int) bool {
		wi, wj := rows[i].Priority.Weight(), rows[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete poster")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Poster, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "poster id is required")
	}
	poster, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "poster not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup poster")
	}
	return poster, nil
}

func fromInput(input Input, into *models.Poster) (*models.Poster, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "poster title is required")
	}
	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "poster image URL is required")
	}

	posterType, err := enums.ParsePosterType(strings.TrimSpace(input.Type))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid poster type")
	}

	priority := enums.PosterPriorityMedium
	if trimmed := strings.TrimSpace(input.Priority); trimmed != "" {
		priority, err = enums.ParsePosterPriority(trimmed)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid poster priority")
		}
	}

	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must not precede starts_at")
	}

	into.Title = title
	into.Description = input.Description
	into.ImageURL = imageURL
	into.Type = posterType
	into.Priority = priority
	into.StartsAt = input.StartsAt
	into.EndsAt = input.EndsAt
	if input.IsActive != nil {
		into.IsActive = *input.IsActive
	} else if into.ID == uuid.Nil {
		into.IsActive = true
	}
	return into, nil
}
