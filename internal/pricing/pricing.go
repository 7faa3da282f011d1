package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/iceonwheels/storefront-backend/pkg/enums"
)

// LineItem is one priced cart entry. Prices are integer minor
// currency units end to end; formatting to decimals happens only at
// output boundaries.
type LineItem struct {
	ID             string
	Name           string
	UnitPriceCents int64
	Quantity       int
	Customizations []string
}

// Promotion is a normalized discount rule. Value carries whole percent
// points for percentage promos and minor currency units for fixed
// promos. A zero MinOrderCents means no threshold; a nil
// MaxDiscountCents means no cap.
type Promotion struct {
	Code              string
	Kind              enums.PromoKind
	Value             int64
	MinOrderCents     int64
	MaxDiscountCents  *int64
	ApplicableItemIDs []string
}

// Totals is the derived pricing snapshot. Always recomputed from
// scratch, never patched incrementally.
type Totals struct {
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
}

// ComputeTotals derives subtotal, discount, and total from the cart
// and an optional promotion. Pure function, safe to call on every
// cart mutation.
//
// The minimum-order gate zeroes the discount without error here; the
// authoritative, user-facing rejection happens at apply time in the
// validator. Guarantees 0 <= discount <= subtotal and total >= 0.
func ComputeTotals(items []LineItem, promo *Promotion) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPriceCents * int64(item.Quantity)
	}

	totals := Totals{SubtotalCents: subtotal, TotalCents: subtotal}
	if promo == nil {
		return totals
	}
	if promo.MinOrderCents > 0 && subtotal < promo.MinOrderCents {
		return totals
	}

	var discount int64
	switch promo.Kind {
	case enums.PromoKindPercentage:
		discount = percentageOf(subtotal, promo.Value)
		if promo.MaxDiscountCents != nil && discount > *promo.MaxDiscountCents {
			discount = *promo.MaxDiscountCents
		}
	case enums.PromoKindFixed:
		discount = promo.Value
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	totals.DiscountCents = discount
	totals.TotalCents = subtotal - discount
	return totals
}

// percentageOf computes value% of amount in minor units, rounded
// half-up to the nearest unit.
func percentageOf(amount, value int64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(value)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
