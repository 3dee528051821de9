package catalog

import "strings"

// Category is one of the fixed catalog categories.
type Category string

const (
	CategoryImage  Category = "image"
	CategoryAudio  Category = "audio"
	CategoryVideo  Category = "video"
	CategoryText   Category = "text"
	CategoryHealth Category = "health"
	CategoryData   Category = "data"
)

var allCategories = []Category{
	CategoryImage,
	CategoryAudio,
	CategoryVideo,
	CategoryText,
	CategoryHealth,
	CategoryData,
}

// Categories returns the closed category set in display order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// categorySynonyms maps exact (lower-cased, trimmed) inputs to categories.
var categorySynonyms = map[string]Category{
	"image":     CategoryImage,
	"images":    CategoryImage,
	"pdf":       CategoryImage,
	"doc":       CategoryImage,
	"docs":      CategoryImage,
	"document":  CategoryImage,
	"documents": CategoryImage,
	"audio":     CategoryAudio,
	"music":     CategoryAudio,
	"video":     CategoryVideo,
	"videos":    CategoryVideo,
	"text":      CategoryText,
	"writing":   CategoryText,
	"health":    CategoryHealth,
	"fitness":   CategoryHealth,
	"data":      CategoryData,
	"dev":       CategoryData,
	"code":      CategoryData,
	"developer": CategoryData,
}

// substringRule is checked in slice order; the order is part of the
// classification contract ("audio video" is audio).
type substringRule struct {
	needles  []string
	category Category
}

var substringRules = []substringRule{
	{needles: []string{"audio"}, category: CategoryAudio},
	{needles: []string{"video"}, category: CategoryVideo},
	{needles: []string{"health", "fitness"}, category: CategoryHealth},
	{needles: []string{"text", "write"}, category: CategoryText},
	{needles: []string{"image", "pdf", "doc"}, category: CategoryImage},
}

// Normalize maps a free-text category to the closed category set.
//
// Exact synonyms win, then substring rules in fixed priority order, and
// anything else (including empty input) is CategoryData.
func Normalize(raw string) Category {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return CategoryData
	}

	if c, ok := categorySynonyms[s]; ok {
		return c
	}

	for _, rule := range substringRules {
		for _, needle := range rule.needles {
			if strings.Contains(s, needle) {
				return rule.category
			}
		}
	}

	return CategoryData
}

// ParseCategory parses an exact category name. Unlike Normalize it does not
// fall back, so it suits validated input such as CLI flags.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", false
	}
	return c, true
}
