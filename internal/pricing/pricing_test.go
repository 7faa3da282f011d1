package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceonwheels/storefront-backend/pkg/enums"
)

func int64Ptr(v int64) *int64 { return &v }

func TestComputeTotalsNoPromo(t *testing.T) {
	totals := ComputeTotals([]LineItem{
		{ID: "a", UnitPriceCents: 3900, Quantity: 2},
	}, nil)

	require.Equal(t, int64(7800), totals.SubtotalCents)
	require.Equal(t, int64(0), totals.DiscountCents)
	require.Equal(t, int64(7800), totals.TotalCents)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, nil)
	require.Equal(t, Totals{}, totals)
}

func TestComputeTotalsPercentage(t *testing.T) {
	promo := &Promotion{Kind: enums.PromoKindPercentage, Value: 10}
	totals := ComputeTotals([]LineItem{
		{ID: "a", UnitPriceCents: 10000, Quantity: 1},
	}, promo)

	require.Equal(t, int64(1000), totals.DiscountCents)
	require.Equal(t, int64(9000), totals.TotalCents)
}

func TestComputeTotalsPercentageClampedByMaxDiscount(t *testing.T) {
	promo := &Promotion{
		Kind:             enums.PromoKindPercentage,
		Value:            10,
		MaxDiscountCents: int64Ptr(500),
	}
	totals := ComputeTotals([]LineItem{
		{ID: "a", UnitPriceCents: 10000, Quantity: 1},
	}, promo)

	require.Equal(t, int64(500), totals.DiscountCents)
	require.Equal(t, int64(9500), totals.TotalCents)
}

func TestComputeTotalsFixedCappedAtSubtotal(t *testing.T) {
	promo := &Promotion{Kind: enums.PromoKindFixed, Value: 10000}
	totals := ComputeTotals([]LineItem{
		{ID: "a", UnitPriceCents: 5000, Quantity: 1},
	}, promo)

	require.Equal(t, int64(5000), totals.DiscountCents)
	require.Equal(t, int64(0), totals.TotalCents)
}

func TestComputeTotalsMinimumOrderNotMet(t *testing.T) {
	promo := &Promotion{
		Kind:          enums.PromoKindPercentage,
		Value:         10,
		MinOrderCents: 25000,
	}
	totals := ComputeTotals([]LineItem{
		{ID: "a", UnitPriceCents: 20000, Quantity: 1},
	}, promo)

	require.Equal(t, int64(20000), totals.SubtotalCents)
	require.Equal(t, int64(0), totals.DiscountCents)
	require.Equal(t, int64(20000), totals.TotalCents)
}

func TestComputeTotalsIdempotent(t *testing.T) {
	items := []LineItem{
		{ID: "a", UnitPriceCents: 1250, Quantity: 3},
		{ID: "b", UnitPriceCents: 990, Quantity: 2},
	}
	promo := &Promotion{Kind: enums.PromoKindPercentage, Value: 15}

	first := ComputeTotals(items, promo)
	second := ComputeTotals(items, promo)
	require.Equal(t, first, second)
}

func TestComputeTotalsInvariants(t *testing.T) {
	carts := [][]LineItem{
		{{ID: "a", UnitPriceCents: 1, Quantity: 1}},
		{{ID: "a", UnitPriceCents: 3333, Quantity: 7}, {ID: "b", UnitPriceCents: 19, Quantity: 13}},
		{{ID: "a", UnitPriceCents: 0, Quantity: 5}},
	}
	promos := []*Promotion{
		nil,
		{Kind: enums.PromoKindPercentage, Value: 33},
		{Kind: enums.PromoKindPercentage, Value: 100},
		{Kind: enums.PromoKindFixed, Value: 999999},
		{Kind: enums.PromoKindPercentage, Value: 50, MaxDiscountCents: int64Ptr(7)},
	}

	for _, items := range carts {
		for _, promo := range promos {
			totals := ComputeTotals(items, promo)
			require.GreaterOrEqual(t, totals.DiscountCents, int64(0))
			require.LessOrEqual(t, totals.DiscountCents, totals.SubtotalCents)
			require.Equal(t, totals.SubtotalCents-totals.DiscountCents, totals.TotalCents)
			require.GreaterOrEqual(t, totals.TotalCents, int64(0))
		}
	}
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	// 15% of 333 = 49.95 -> 50
	promo := &Promotion{Kind: enums.PromoKindPercentage, Value: 15}
	totals := ComputeTotals([]LineItem{
		{ID: "a", UnitPriceCents: 333, Quantity: 1},
	}, promo)
	require.Equal(t, int64(50), totals.DiscountCents)
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "78.00", FormatAmount(7800))
	require.Equal(t, "0.05", FormatAmount(5))
	require.Equal(t, "123.45", FormatAmount(12345))
}
