package enums

import "fmt"

// PosterType categorizes storefront posters.
type PosterType string

const (
	PosterTypePromotion    PosterType = "promotion"
	PosterTypeAnnouncement PosterType = "announcement"
	PosterTypeEvent        PosterType = "event"
	PosterTypeSeasonal     PosterType = "seasonal"
)

var validPosterTypes = []PosterType{
	PosterTypePromotion,
	PosterTypeAnnouncement,
	PosterTypeEvent,
	PosterTypeSeasonal,
}

// String implements fmt.Stringer.
func (p PosterType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PosterType.
func (p PosterType) IsValid() bool {
	for _, candidate := range validPosterTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePosterType converts raw input into a PosterType.
func ParsePosterType(value string) (PosterType, error) {
	for _, candidate := range validPosterTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid poster type %q", value)
}
