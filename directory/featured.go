package directory

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Featured is the hand-curated fallback for empty rankings.
//
// File format:
//
//	trending:
//	  - pdf-merge
//	  - audio-trim
//	top_rated:
//	  - image-resize
type Featured struct {
	Trending []string `yaml:"trending"`
	TopRated []string `yaml:"top_rated"`
}

// ParseFeatured decodes a YAML document. Blank and repeated identifiers are
// dropped.
func ParseFeatured(data []byte) (Featured, error) {
	var f Featured
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Featured{}, fmt.Errorf("directory: parse featured: %w", err)
	}
	f.Trending = cleanIDs(f.Trending)
	f.TopRated = cleanIDs(f.TopRated)
	return f, nil
}

// LoadFeatured reads and parses the YAML file at path.
func LoadFeatured(path string) (Featured, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Featured{}, fmt.Errorf("directory: read featured: %w", err)
	}
	return ParseFeatured(raw)
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
