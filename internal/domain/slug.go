package domain

import (
	"regexp"
	"strings"
)

// slugShape is the canonical shape for stored slugs: lowercase alphanumeric
// tokens joined by single dashes.
var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// nonAlnum matches runs of characters that are not lowercase letters or digits.
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from an event title: lowercase, runs of
// non-alphanumeric characters collapsed to a single dash, leading and
// trailing dashes stripped. Titles with no usable characters are rejected.
func Slugify(title string) (string, error) {
	slug := strings.ToLower(title)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "", Validationf("cannot derive slug from title %q", title)
	}
	return slug, nil
}

// IsValidSlug reports whether s already has the canonical slug shape.
func IsValidSlug(s string) bool {
	return slugShape.MatchString(s)
}

// SlugVariantPattern returns a regexp matching base itself or base with a
// numeric dash suffix (base, base-1, base-2, ...). Used by the slug
// uniqueness pre-check to filter candidate collisions.
func SlugVariantPattern(base string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `(-\d+)?$`)
}
