package service

import (
	"errors"
	"regexp"
	"strings"
)

var (
	errEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// slugify lowercases input and collapses everything but letters and digits into
// single hyphens, falling back when nothing is left.
func slugify(input, fallback string) (string, error) {
	slug := toSlug(input)
	if slug == "" {
		slug = toSlug(fallback)
	}
	if slug == "" {
		return "", errEmptySlug
	}
	return slug, nil
}

func toSlug(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}
