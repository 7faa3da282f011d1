package promos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db"
	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

// PromoRepository defines the persistence surface required by the promos service.
type PromoRepository interface {
	WithTx(tx *gorm.DB) PromoRepository
	Create(ctx context.Context, promo *models.PromoCode) (*models.PromoCode, error)
	Update(ctx context.Context, promo *models.PromoCode) (*models.PromoCode, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PromoCode, error)
	FindByCode(ctx context.Context, code string) (*models.PromoCode, error)
	List(ctx context.Context) ([]models.PromoCode, error)
	IncrementUsage(ctx context.Context, code string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes promo campaign management.
type Service interface {
	Create(ctx context.Context, input Input) (*models.PromoCode, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.PromoCode, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PromoCode, error)
	List(ctx context.Context) ([]models.PromoCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordUse(ctx context.Context, code string) error
}

type service struct {
	repo PromoRepository
}

// NewService builds a promos service backed by the provided repository.
func NewService(repo PromoRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promos repository required")
	}
	return &service{repo: repo}, nil
}

// Input captures the payload for creating or replacing a promo code.
type Input struct {
	Code             string     `json:"code" validate:"required"`
	Description      *string    `json:"description,omitempty"`
	Kind             string     `json:"kind" validate:"required"`
	Value            int64      `json:"value" validate:"gt=0"`
	MaxDiscountCents *int64     `json:"max_discount_cents,omitempty"`
	MinOrderCents    int64      `json:"min_order_cents" validate:"gte=0"`
	ValidFrom        *time.Time `json:"valid_from,omitempty"`
	ValidUntil       *time.Time `json:"valid_until,omitempty"`
	UsageLimit       *int       `json:"usage_limit,omitempty"`
	ApplicableItems  []string   `json:"applicable_items,omitempty"`
	IsActive         *bool      `json:"is_active,omitempty"`
}

func (s *service) Create(ctx context.Context, input Input) (*models.PromoCode, error) {
	promo, err := fromInput(input, &models.PromoCode{})
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByCode(ctx, promo.Code); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "promo code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup promo code")
	}

	created, err := s.repo.Create(ctx, promo)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_promo_codes_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "promo code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create promo code")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.PromoCode, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	promo, err := fromInput(input, existing)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, promo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update promo code")
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PromoCode, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.PromoCode, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list promo codes")
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete promo code")
	}
	return nil
}

// RecordUse bumps the usage counter after a promo is redeemed at
// checkout. Static built-in codes have no registry row; their usage is
// not tracked, so a missing row is not an error.
func (s *service) RecordUse(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	if err := s.repo.IncrementUsage(ctx, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record promo use")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.PromoCode, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo id is required")
	}
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promo code not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup promo code")
	}
	return promo, nil
}

func fromInput(input Input, into *models.PromoCode) (*models.PromoCode, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo code is required")
	}

	kind, err := enums.ParsePromoKind(strings.TrimSpace(input.Kind))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid promo kind")
	}
	if input.Value <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo value must be positive")
	}
	if kind == enums.PromoKindPercentage && input.Value > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage cannot exceed 100")
	}
	if input.MinOrderCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum order cannot be negative")
	}
	if input.MaxDiscountCents != nil && *input.MaxDiscountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "maximum discount must be positive")
	}
	if input.UsageLimit != nil && *input.UsageLimit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "usage limit must be positive")
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && input.ValidUntil.Before(*input.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_until must not precede valid_from")
	}

	into.Code = code
	into.Description = input.Description
	into.Kind = kind
	into.Value = input.Value
	into.MaxDiscountCents = input.MaxDiscountCents
	into.MinOrderCents = input.MinOrderCents
	into.ValidFrom = input.ValidFrom
	into.ValidUntil = input.ValidUntil
	into.UsageLimit = input.UsageLimit
	into.ApplicableItems = input.ApplicableItems
	if into.ApplicableItems == nil {
		into.ApplicableItems = []string{}
	}
	if input.IsActive != nil {
		into.IsActive = *input.IsActive
	} else if into.ID == uuid.Nil {
		into.IsActive = true
	}
	return into, nil
}
