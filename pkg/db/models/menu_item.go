package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MenuItem represents one sellable item on the storefront menu.
type MenuItem struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Description *string        `gorm:"column:description"`
	Category    string         `gorm:"column:category;not null"`
	Emoji       *string        `gorm:"column:emoji"`
	PriceCents  int64          `gorm:"column:price_cents;not null"`
	ImageURL    *string        `gorm:"column:image_url"`
	Sizes       pq.StringArray `gorm:"column:sizes;type:text[];not null;default:ARRAY[]::text[]"`
	IsAvailable bool           `gorm:"column:is_available;not null;default:true"`
	IsFeatured  bool           `gorm:"column:is_featured;not null;default:false"`
	Popularity  int            `gorm:"column:popularity;not null;default:0"`
	Inventory   *InventoryItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
