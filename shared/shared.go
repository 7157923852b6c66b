package shared

import (
	"fmt"
	"strings"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins the non-empty parts of a cache key.
func BuildCacheKey(parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, cacheKeySeparator)
}

// Pluralize picks the singular form only for a count of exactly one.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}

	return plural
}

// CountOf renders "2 nights" style phrases.
func CountOf(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, Pluralize(count, singular, plural))
}
