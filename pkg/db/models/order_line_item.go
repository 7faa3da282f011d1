package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/iceonwheels/storefront-backend/pkg/enums"
)

// OrderLineItem captures the snapshot of each item within an order.
type OrderLineItem struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	MenuItemID     *uuid.UUID      `gorm:"column:menu_item_id;type:uuid"`
	Name           string          `gorm:"column:name;not null"`
	Size           *enums.ItemSize `gorm:"column:size;type:item_size"`
	Toppings       pq.StringArray  `gorm:"column:toppings;type:text[];not null;default:ARRAY[]::text[]"`
	UnitPriceCents int64           `gorm:"column:unit_price_cents;not null"`
	Qty            int             `gorm:"column:qty;not null"`
	TotalCents     int64           `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
