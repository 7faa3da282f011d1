package receipts

import (
	"strconv"
	"strings"
	"time"

	"github.com/iceonwheels/storefront-backend/internal/pricing"
	"github.com/iceonwheels/storefront-backend/pkg/config"
	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/escpos"
)

// Column layout for the 32-character item table: name padded to 22,
// quantity right-justified to 2, then the price.
const (
	maxItemName   = 20
	itemNameWidth = 22
	qtyWidth      = 2
)

const timestampLayout = "02/01/2006 15:04"

// Encoder serializes finalized orders into ESC/POS byte streams.
type Encoder struct {
	store config.StoreConfig
	width int
	now   func() time.Time
}

// NewEncoder builds an encoder using the store's receipt branding.
func NewEncoder(store config.StoreConfig) *Encoder {
	return &Encoder{store: store, width: escpos.DefaultWidth, now: time.Now}
}

// EncodeReceipt renders the fixed receipt layout for a finalized
// order. Pure over a well-formed order; never fails.
func (e *Encoder) EncodeReceipt(order *models.Order) []byte {
	doc := escpos.NewDocument(e.width)

	// header
	doc.Center().DoubleHeight().Bold(true).
		Line(e.store.Name).
		Normal().Bold(false).
		Line(e.store.Byline).
		Line(e.store.Tagline).
		Feed(1)

	// order metadata
	doc.Left().Bold(true).
		Line("Order ID: " + order.OrderNumber).
		Line("Date: " + order.PlacedAt.Format(timestampLayout)).
		Line("Customer: " + order.CustomerName)
	if order.CustomerPhone != nil {
		doc.Line("Phone: " + *order.CustomerPhone)
	}
	doc.Line("Type: " + order.OrderType.Label()).
		Line("Payment: " + order.PaymentMethod.Label()).
		Bold(false).
		Divider('=')

	// item table
	doc.Bold(true).
		Line(escpos.PadRight("Item", itemNameWidth) + escpos.PadLeft("Qty", qtyWidth) + "  Price").
		Bold(false).
		Divider('-')

	for _, item := range order.LineItems {
		name := escpos.Truncate(item.Name, maxItemName)
		qty := escpos.PadLeft(strconv.Itoa(item.Qty), qtyWidth)
		price := e.money(item.TotalCents)
		doc.Line(escpos.PadRight(name, itemNameWidth) + qty + " " + price)

		if item.Size != nil {
			doc.Line("  Size: " + item.Size.Label())
		}
		if len(item.Toppings) > 0 {
			doc.Line("  Toppings: " + strings.Join(item.Toppings, ", "))
		}
	}

	doc.Divider('=')

	// totals
	doc.Right().
		Line("Subtotal: " + e.money(order.SubtotalCents))
	if order.DiscountCents > 0 {
		doc.Line("Discount: -" + e.money(order.DiscountCents))
	}
	doc.Bold(true).DoubleHeight().
		Line("TOTAL: " + e.money(order.TotalCents)).
		Normal().Bold(false)

	// footer
	doc.Center().Feed(1).
		Line("Thank you for choosing").
		Line(e.store.Name + "!").
		Line("Visit us again soon!").
		Feed(1).
		Line(e.store.Website)

	doc.Cut()
	return doc.Bytes()
}

// EncodeSelfTest renders a short connectivity test payload.
func (e *Encoder) EncodeSelfTest() []byte {
	doc := escpos.NewDocument(e.width)

	doc.Center().DoubleHeight().Bold(true).
		Line("PRINTER TEST").
		Normal().Bold(false).
		Line(e.store.Name).
		Line("Printer connection successful!").
		Line(e.now().Format(timestampLayout))

	doc.Cut()
	return doc.Bytes()
}

func (e *Encoder) money(cents int64) string {
	return e.store.CurrencySymbol + pricing.FormatAmount(cents)
}

