package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/iceonwheels/storefront-backend/pkg/enums"
)

// Poster is a promotional banner shown on the storefront.
type Poster struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string               `gorm:"column:title;not null"`
	Description *string              `gorm:"column:description"`
	ImageURL    string               `gorm:"column:image_url;not null"`
	Type        enums.PosterType     `gorm:"column:type;type:poster_type;not null"`
	Priority    enums.PosterPriority `gorm:"column:priority;type:poster_priority;not null;default:'medium'"`
	IsActive    bool                 `gorm:"column:is_active;not null;default:true"`
	StartsAt    *time.Time           `gorm:"column:starts_at"`
	EndsAt      *time.Time           `gorm:"column:ends_at"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
