package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks on-hand stock for a menu item.
type InventoryItem struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID        uuid.UUID  `gorm:"column:menu_item_id;type:uuid;not null;uniqueIndex"`
	Quantity          int        `gorm:"column:quantity;not null;default:0"`
	Unit              string     `gorm:"column:unit;not null;default:'serving'"`
	LowStockThreshold int        `gorm:"column:low_stock_threshold;not null;default:0"`
	LastRestockedAt   *time.Time `gorm:"column:last_restocked_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// IsLowStock reports whether quantity has fallen to the configured threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.LowStockThreshold > 0 && i.Quantity <= i.LowStockThreshold
}
