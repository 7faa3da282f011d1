package pricing

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

// Registry looks up admin-managed promotions by code. Implementations
// return gorm.ErrRecordNotFound when no record carries the code.
type Registry interface {
	FindByCode(ctx context.Context, code string) (*models.PromoCode, error)
}

// Validator decides promo applicability. The admin registry is
// consulted first; the static built-in table is the fallback. When the
// same code exists in both with different terms, a registry record
// that passes all conditions wins; a registry record that fails its
// conditions yields to the static table.
type Validator struct {
	registry Registry
	now      func() time.Time
}

// NewValidator builds a validator. A nil registry disables the admin
// lookup and leaves only the static table.
func NewValidator(registry Registry) *Validator {
	return &Validator{registry: registry, now: time.Now}
}

// ValidatePromoCode resolves a user-entered code to a normalized
// Promotion. Matching is case-insensitive. Returns CodeInvalidPromo
// when no promotion matches; the caller renders a generic message and
// must not distinguish "wrong code" from "conditions unmet".
func (v *Validator) ValidatePromoCode(ctx context.Context, code string, items []LineItem) (*Promotion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidPromo, "promo code is required")
	}

	if v.registry != nil {
		record, err := v.registry.FindByCode(ctx, code)
		switch {
		case err == nil:
			if v.matches(record, items) {
				promo := normalizePromo(record)
				return &promo, nil
			}
		case stdErrors.Is(err, gorm.ErrRecordNotFound):
			// fall through to the static table
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up promo code")
		}
	}

	for _, promo := range staticPromotions {
		if strings.EqualFold(promo.Code, code) {
			found := promo
			return &found, nil
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeInvalidPromo, "invalid or inapplicable promo code")
}

// Apply resolves the code and enforces the minimum-order threshold
// with a user-facing message. This is the authoritative gate; the
// silent zeroing inside ComputeTotals only covers carts that shrink
// below the threshold after a promo was applied.
func (v *Validator) Apply(ctx context.Context, code string, items []LineItem) (*Promotion, Totals, error) {
	promo, err := v.ValidatePromoCode(ctx, code, items)
	if err != nil {
		return nil, Totals{}, err
	}

	if promo.MinOrderCents > 0 {
		subtotal := ComputeTotals(items, nil).SubtotalCents
		if subtotal < promo.MinOrderCents {
			return nil, Totals{}, pkgerrors.New(pkgerrors.CodeInvalidPromo,
				"order subtotal of "+FormatAmount(promo.MinOrderCents)+" required for this promo code").
				WithDetails(map[string]any{"min_order_cents": promo.MinOrderCents})
		}
	}

	return promo, ComputeTotals(items, promo), nil
}

func (v *Validator) matches(record *models.PromoCode, items []LineItem) bool {
	if record == nil || !record.IsActive {
		return false
	}

	now := v.now()
	if record.ValidFrom != nil && now.Before(*record.ValidFrom) {
		return false
	}
	if record.ValidUntil != nil && now.After(*record.ValidUntil) {
		return false
	}
	if record.UsageLimit != nil && record.UsedCount >= *record.UsageLimit {
		return false
	}

	if len(record.ApplicableItems) > 0 {
		eligible := make(map[string]struct{}, len(record.ApplicableItems))
		for _, id := range record.ApplicableItems {
			eligible[id] = struct{}{}
		}
		found := false
		for _, item := range items {
			if _, ok := eligible[item.ID]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func normalizePromo(record *models.PromoCode) Promotion {
	promo := Promotion{
		Code:          record.Code,
		Kind:          record.Kind,
		Value:         record.Value,
		MinOrderCents: record.MinOrderCents,
	}
	if record.MaxDiscountCents != nil {
		limit := *record.MaxDiscountCents
		promo.MaxDiscountCents = &limit
	}
	if len(record.ApplicableItems) > 0 {
		promo.ApplicableItemIDs = append([]string{}, record.ApplicableItems...)
	}
	return promo
}

// FormatAmount renders minor currency units as a 2-decimal string.
func FormatAmount(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
