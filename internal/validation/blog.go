package validation

import (
	"fmt"
)

const (
	maxTitleLen   = 255
	minContentLen = 10
	maxExcerptLen = 500
	maxTagLen     = 50
)

// ValidateTitle checks blog title bounds.
func ValidateTitle(title string) error {
	if len(title) < 1 || len(title) > maxTitleLen {
		return fmt.Errorf("title is required and must be less than %d characters", maxTitleLen+1)
	}
	return nil
}

// ValidateContent checks the minimum content length.
func ValidateContent(content string) error {
	if len(content) < minContentLen {
		return fmt.Errorf("content must be at least %d characters long", minContentLen)
	}
	return nil
}

// ValidateExcerpt checks the optional excerpt bound.
func ValidateExcerpt(excerpt string) error {
	if len(excerpt) > maxExcerptLen {
		return fmt.Errorf("excerpt must be less than %d characters", maxExcerptLen+1)
	}
	return nil
}

// ValidateTags checks each tag's length bounds.
func ValidateTags(tags []string) error {
	for _, tag := range tags {
		if len(tag) < 1 || len(tag) > maxTagLen {
			return fmt.Errorf("each tag must be between 1 and %d characters", maxTagLen)
		}
	}
	return nil
}
