package posters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
)

// Repository exposes persistence operations for storefront posters.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a posters repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) PosterRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new poster.
func (r *Repository) Create(ctx context.Context, poster *models.Poster) (*models.Poster, error) {
	if err := r.db.WithContext(ctx).Create(poster).Error; err != nil {
		return nil, err
	}
	return poster, nil
}

// Update saves the provided poster.
func (r *Repository) Update(ctx context.Context, poster *models.Poster) (*models.Poster, error) {
	if err := r.db.WithContext(ctx).Save(poster).Error; err != nil {
		return nil, err
	}
	return poster, nil
}

// FindByID loads a poster by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Poster, error) {
	var poster models.Poster
	if err := r.db.WithContext(ctx).First(&poster, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &poster, nil
}

// List returns every poster, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Poster, error) {
	var rows []models.Poster
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActive returns posters visible at the given instant: active rows
// whose schedule window, when set, contains it.
func (r *Repository) ListActive(ctx context.Context, at time.Time) ([]models.Poster, error) {
	var rows []models.Poster
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE").
		Where("starts_at IS NULL OR starts_at <= ?", at).
		Where("ends_at IS NULL OR ends_at >= ?", at).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes a poster by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Poster{}, "id = ?", id).Error
}
