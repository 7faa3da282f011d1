package enums

import "fmt"

// PosterPriority orders posters on the storefront.
type PosterPriority string

const (
	PosterPriorityLow    PosterPriority = "low"
	PosterPriorityMedium PosterPriority = "medium"
	PosterPriorityHigh   PosterPriority = "high"
)

var validPosterPriorities = []PosterPriority{
	PosterPriorityLow,
	PosterPriorityMedium,
	PosterPriorityHigh,
}

// String implements fmt.Stringer.
func (p PosterPriority) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PosterPriority.
func (p PosterPriority) IsValid() bool {
	for _, candidate := range validPosterPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// Weight returns a sortable rank, highest priority first.
func (p PosterPriority) Weight() int {
	switch p {
	case PosterPriorityHigh:
		return 3
	case PosterPriorityMedium:
		return 2
	case PosterPriorityLow:
		return 1
	default:
		return 0
	}
}

// ParsePosterPriority converts raw input into a PosterPriority.
func ParsePosterPriority(value string) (PosterPriority, error) {
	for _, candidate := range validPosterPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid poster priority %q", value)
}
