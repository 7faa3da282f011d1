package receipts

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iceonwheels/storefront-backend/pkg/config"
	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	"github.com/iceonwheels/storefront-backend/pkg/escpos"
)

func testStore() config.StoreConfig {
	return config.StoreConfig{
		Name:           "ICE ON WHEELS",
		Byline:         "Your Favorite Ice Cream Cart",
		Tagline:        "Fresh & Delicious Treats",
		Website:        "www.iceonwheels.com",
		CurrencySymbol: "Rs.",
	}
}

func testOrder() *models.Order {
	phone := "9876543210"
	return &models.Order{
		OrderNumber:   "IOW-1042",
		CustomerName:  "Asha",
		CustomerPhone: &phone,
		OrderType:     enums.OrderTypePickup,
		PaymentMethod: enums.PaymentMethodCash,
		SubtotalCents: 7800,
		DiscountCents: 0,
		TotalCents:    7800,
		PlacedAt:      time.Date(2026, 3, 14, 17, 30, 0, 0, time.UTC),
		LineItems: []models.OrderLineItem{
			{Name: "Vanilla Scoop", Qty: 2, UnitPriceCents: 3900, TotalCents: 7800},
		},
	}
}

func TestEncodeReceiptStructure(t *testing.T) {
	encoder := NewEncoder(testStore())
	out := encoder.EncodeReceipt(testOrder())

	require.True(t, bytes.HasPrefix(out, escpos.Init), "stream must start with INIT")
	require.True(t, bytes.HasSuffix(out, escpos.CutPaper), "stream must end with CUT_PAPER")

	require.Contains(t, string(out), "ICE ON WHEELS")
	require.Contains(t, string(out), "Order ID: IOW-1042")
	require.Contains(t, string(out), "Date: 14/03/2026 17:30")
	require.Contains(t, string(out), "Type: Pickup")
	require.Contains(t, string(out), "Payment: Cash")
	require.Contains(t, string(out), "Subtotal: Rs.78.00")
	require.Contains(t, string(out), "TOTAL: Rs.78.00")

	// mode tokens must precede the text they modify
	center := bytes.Index(out, escpos.AlignCenter)
	name := bytes.Index(out, []byte("ICE ON WHEELS"))
	left := bytes.Index(out, escpos.AlignLeft)
	meta := bytes.Index(out, []byte("Order ID:"))
	require.Less(t, center, name)
	require.Less(t, name, left)
	require.Less(t, left, meta)
}

func TestEncodeReceiptOmitsZeroDiscountLine(t *testing.T) {
	encoder := NewEncoder(testStore())
	out := encoder.EncodeReceipt(testOrder())
	require.NotContains(t, string(out), "Discount:")
}

func TestEncodeReceiptIncludesPositiveDiscount(t *testing.T) {
	order := testOrder()
	order.DiscountCents = 780
	order.TotalCents = 7020

	encoder := NewEncoder(testStore())
	out := encoder.EncodeReceipt(order)
	require.Contains(t, string(out), "Discount: -Rs.7.80")
	require.Contains(t, string(out), "TOTAL: Rs.70.20")
}

func TestEncodeReceiptItemColumns(t *testing.T) {
	order := testOrder()
	size := enums.ItemSizeLarge
	order.LineItems = []models.OrderLineItem{
		{
			Name:           "Triple Chocolate Fudge Sundae",
			Qty:            1,
			UnitPriceCents: 12000,
			TotalCents:     12000,
			Size:           &size,
			Toppings:       []string{"Sprinkles", "Cherry"},
		},
	}

	encoder := NewEncoder(testStore())
	out := string(encoder.EncodeReceipt(order))

	require.Contains(t, out, "Triple Chocolate ...")
	require.Contains(t, out, "  Size: Large")
	require.Contains(t, out, "  Toppings: Sprinkles, Cherry")
	// padded name column, right-justified qty, then price
	require.Contains(t, out, "Triple Chocolate ...   1 Rs.120.00")
}

func TestEncodeSelfTest(t *testing.T) {
	encoder := NewEncoder(testStore())
	encoder.now = func() time.Time {
		return time.Date(2026, 3, 14, 17, 30, 0, 0, time.UTC)
	}

	out := encoder.EncodeSelfTest()
	require.True(t, bytes.HasPrefix(out, escpos.Init))
	require.True(t, bytes.HasSuffix(out, escpos.CutPaper))
	require.Contains(t, string(out), "PRINTER TEST")
	require.Contains(t, string(out), "14/03/2026 17:30")
}
