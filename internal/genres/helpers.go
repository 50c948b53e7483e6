package genres

import (
	"regexp"
	"strings"

	"clubly/internal/ranking"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
)

// GenerateSlug turns a genre name into a URL slug ("Tech House" -> "tech-house")
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Normalize is the canonical matching form of a genre name
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseQuery splits raw filter values ("Tech House,techno", "house") into a
// normalized genre set. Repeated query params and comma lists are both accepted.
func ParseQuery(values ...string) []string {
	var parts []string
	for _, value := range values {
		parts = append(parts, strings.Split(value, ",")...)
	}
	return ranking.NormalizeSet(parts)
}

// Names maps genres to their display names
func Names(genres []Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}
