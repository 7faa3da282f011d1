package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/iceonwheels/storefront-backend/pkg/enums"
)

// Order is a placed storefront order with its priced snapshot.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber   string              `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerPhone *string             `gorm:"column:customer_phone"`
	OrderType     enums.OrderType     `gorm:"column:order_type;type:order_type;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	Status        enums.OrderStatus   `gorm:"column:status;type:order_status;not null;default:'pending'"`
	SubtotalCents int64               `gorm:"column:subtotal_cents;not null"`
	DiscountCents int64               `gorm:"column:discount_cents;not null;default:0"`
	TotalCents    int64               `gorm:"column:total_cents;not null"`
	PromoCode     *string             `gorm:"column:promo_code"`
	Notes         *string             `gorm:"column:notes"`
	LineItems     []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PlacedAt      time.Time           `gorm:"column:placed_at;not null"`
	CompletedAt   *time.Time          `gorm:"column:completed_at"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
