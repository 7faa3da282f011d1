package posters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

type stubPosterRepo struct {
	rows map[uuid.UUID]*models.Poster
	seq  int
}

func newStubPosterRepo() *stubPosterRepo {
	return &stubPosterRepo{rows: map[uuid.UUID]*models.Poster{}}
}

func (s *stubPosterRepo) WithTx(tx *gorm.DB) PosterRepository { return s }

func (s *stubPosterRepo) Create(_ context.Context, poster *models.Poster) (*models.Poster, error) {
	poster.ID = uuid.New()
	s.seq++
	poster.CreatedAt = time.Unix(int64(s.seq), 0)
	s.rows[poster.ID] = poster
	return poster, nil
}

func (s *stubPosterRepo) Update(_ context.Context, poster *models.Poster) (*models.Poster, error) {
	s.rows[poster.ID] = poster
	return poster, nil
}

func (s *stubPosterRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Poster, error) {
	poster, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return poster, nil
}

func (s *stubPosterRepo) List(_ context.Context) ([]models.Poster, error) {
	var out []models.Poster
	for _, poster := range s.rows {
		out = append(out, *poster)
	}
	return out, nil
}

func (s *stubPosterRepo) ListActive(_ context.Context, at time.Time) ([]models.Poster, error) {
	var out []models.Poster
	for _, poster := range s.rows {
		if !poster.IsActive {
			continue
		}
		if poster.StartsAt != nil && poster.StartsAt.After(at) {
			continue
		}
		if poster.EndsAt != nil && poster.EndsAt.Before(at) {
			continue
		}
		out = append(out, *poster)
	}
	return out, nil
}

func (s *stubPosterRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func TestCreateDefaultsPriorityAndActive(t *testing.T) {
	svc, err := NewService(newStubPosterRepo())
	require.NoError(t, err)

	poster, err := svc.Create(context.Background(), Input{
		Title:    "Mango Season",
		ImageURL: "https://cdn.example.com/mango.png",
		Type:     "seasonal",
	})
	require.NoError(t, err)
	require.Equal(t, enums.PosterPriorityMedium, poster.Priority)
	require.True(t, poster.IsActive)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, err := NewService(newStubPosterRepo())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Input{
		Title:    "Bad",
		ImageURL: "https://cdn.example.com/bad.png",
		Type:     "banner",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateRejectsInvertedSchedule(t *testing.T) {
	svc, err := NewService(newStubPosterRepo())
	require.NoError(t, err)

	starts := time.Now()
	ends := starts.Add(-time.Hour)
	_, err = svc.Create(context.Background(), Input{
		Title:    "Backwards",
		ImageURL: "https://cdn.example.com/backwards.png",
		Type:     "event",
		StartsAt: &starts,
		EndsAt:   &ends,
	})
	require.Error(t, err)
}

func TestListPublicFiltersAndSortsByPriority(t *testing.T) {
	repo := newStubPosterRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	inactive := false
	past := time.Now().Add(-time.Hour)

	_, err = svc.Create(context.Background(), Input{
		Title: "Low", ImageURL: "https://cdn.example.com/a.png",
		Type: "promotion", Priority: "low",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Input{
		Title: "High", ImageURL: "https://cdn.example.com/b.png",
		Type: "promotion", Priority: "high",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Input{
		Title: "Hidden", ImageURL: "https://cdn.example.com/c.png",
		Type: "promotion", IsActive: &inactive,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Input{
		Title: "Expired", ImageURL: "https://cdn.example.com/d.png",
		Type: "promotion", EndsAt: &past,
	})
	require.NoError(t, err)

	visible, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, visible, 2)
	require.Equal(t, "High", visible[0].Title)
	require.Equal(t, "Low", visible[1].Title)
}

func TestGetUnknownPoster(t *testing.T) {
	svc, err := NewService(newStubPosterRepo())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
