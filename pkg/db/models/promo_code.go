package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/iceonwheels/storefront-backend/pkg/enums"
)

// PromoCode is an admin-managed discount campaign.
//
// Value is interpreted by Kind: whole percent points for percentage
// promos, minor currency units for fixed promos.
type PromoCode struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code             string          `gorm:"column:code;not null;uniqueIndex"`
	Description      *string         `gorm:"column:description"`
	Kind             enums.PromoKind `gorm:"column:kind;type:promo_kind;not null"`
	Value            int64           `gorm:"column:value;not null"`
	MaxDiscountCents *int64          `gorm:"column:max_discount_cents"`
	MinOrderCents    int64           `gorm:"column:min_order_cents;not null;default:0"`
	ValidFrom        *time.Time      `gorm:"column:valid_from"`
	ValidUntil       *time.Time      `gorm:"column:valid_until"`
	UsageLimit       *int            `gorm:"column:usage_limit"`
	UsedCount        int             `gorm:"column:used_count;not null;default:0"`
	ApplicableItems  pq.StringArray  `gorm:"column:applicable_items;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	IsActive         bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
