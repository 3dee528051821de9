package catalog

import "strings"

// Kind tags what a tool operates on. It drives icon lookup in presentation
// code and is independent of Category.
type Kind string

const (
	KindImage  Kind = "image"
	KindAudio  Kind = "audio"
	KindVideo  Kind = "video"
	KindText   Kind = "text"
	KindHealth Kind = "health"
	KindData   Kind = "data"
)

// ParseKind parses an exact kind name. Unknown input yields KindData.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindImage, KindAudio, KindVideo, KindText, KindHealth, KindData:
		return k
	default:
		return KindData
	}
}

// Tool is the canonical catalog entity.
type Tool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"` // always a member of the closed set
	InputType   string   `json:"input_type"`
	OutputType  string   `json:"output_type"`
	Popular     bool     `json:"popular"`
	Kind        Kind     `json:"kind"`
}

// Row is one untrusted record as returned by the remote store.
// Category and Icon are free text of unknown shape.
type Row struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	InputType   string `json:"input_type"`
	OutputType  string `json:"output_type"`
	Kind        string `json:"kind"`
	Popular     bool   `json:"popular"`
	Enabled     bool   `json:"enabled"`
}

// MapRow converts a store row into a Tool. It never fails; unknown or
// missing fields degrade to defaults. The icon is not carried over.
func MapRow(r Row) Tool {
	return Tool{
		ID:          strings.TrimSpace(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Category:    Normalize(r.Category),
		InputType:   normalizeTypeTag(r.InputType),
		OutputType:  normalizeTypeTag(r.OutputType),
		Popular:     r.Popular,
		Kind:        ParseKind(r.Kind),
	}
}

// MapRows maps rows in order into a freshly allocated slice.
func MapRows(rows []Row) []Tool {
	tools := make([]Tool, len(rows))
	for i, r := range rows {
		tools[i] = MapRow(r)
	}
	return tools
}

func normalizeTypeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GroupByCategory buckets tools by category, preserving input order within
// each bucket. Every category has an entry, possibly empty.
func GroupByCategory(tools []Tool) map[Category][]Tool {
	groups := make(map[Category][]Tool, len(allCategories))
	for _, c := range allCategories {
		groups[c] = nil
	}
	for _, t := range tools {
		groups[t.Category] = append(groups[t.Category], t)
	}
	return groups
}

// Index builds an identifier lookup over tools. Later duplicates win.
func Index(tools []Tool) map[string]Tool {
	idx := make(map[string]Tool, len(tools))
	for _, t := range tools {
		idx[t.ID] = t
	}
	return idx
}
