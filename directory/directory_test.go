package directory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/stats"
)

type staticTools []catalog.Tool

func (s staticTools) Tools() []catalog.Tool { return s }

type staticStats struct{ snap *stats.Snapshot }

func (s staticStats) Snapshot(context.Context) *stats.Snapshot { return s.snap }

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Tool.ID
	}
	return out
}

func testTools() staticTools {
	return staticTools{
		{ID: "a", Name: "Alpha", Category: catalog.CategoryAudio, Popular: true},
		{ID: "b", Name: "Beta", Category: catalog.CategoryImage},
		{ID: "c", Name: "Gamma", Category: catalog.CategoryAudio},
		{ID: "f", Name: "Featured", Category: catalog.CategoryText},
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, staticStats{}, Featured{}); !errors.Is(err, ErrNilTools) {
		t.Errorf("error = %v, want ErrNilTools", err)
	}
	if _, err := New(testTools(), nil, Featured{}); !errors.Is(err, ErrNilStats) {
		t.Errorf("error = %v, want ErrNilStats", err)
	}
}

func TestDirectory_TrendingResolvesBestEffort(t *testing.T) {
	snap := stats.NewSnapshot([]stats.Row{
		{ToolID: "a", ViewCount: 500},
		{ToolID: "ghost", ViewCount: 900},
		{ToolID: "b", ViewCount: 100},
		{ToolID: "c", ViewCount: 500},
	}, time.Now())
	d, _ := New(testTools(), staticStats{snap}, Featured{Trending: []string{"f"}})

	r := d.Trending(context.Background())
	if r.Curated {
		t.Error("Curated = true, want derived ranking")
	}
	if got := ids(r.Entries); !slices.Equal(got, []string{"a", "c", "b"}) {
		t.Errorf("Trending() = %v, want [a c b]", got)
	}
	if r.Entries[0].Stats.ViewCount != 500 {
		t.Errorf("stats not joined: %+v", r.Entries[0])
	}
}

func TestDirectory_FallsBackToCurated(t *testing.T) {
	featured := Featured{Trending: []string{"f", "missing", "a"}, TopRated: []string{"b"}}
	d, _ := New(testTools(), staticStats{stats.NewSnapshot(nil, time.Now())}, featured)

	tr := d.Trending(context.Background())
	if !tr.Curated || !slices.Equal(ids(tr.Entries), []string{"f", "a"}) {
		t.Errorf("Trending() = %+v", tr)
	}
	if tr.Entries[0].Stats != (stats.Record{}) {
		t.Errorf("unknown stats should be zero, got %+v", tr.Entries[0].Stats)
	}

	top := d.TopRated(context.Background())
	if !top.Curated || !slices.Equal(ids(top.Entries), []string{"b"}) {
		t.Errorf("TopRated() = %+v", top)
	}
}

func TestDirectory_TopRatedSkipsUnrated(t *testing.T) {
	snap := stats.NewSnapshot([]stats.Row{
		{ToolID: "a", AverageRating: 5, TotalRatings: 0},
		{ToolID: "b", AverageRating: 3.5, TotalRatings: 4},
	}, time.Now())
	d, _ := New(testTools(), staticStats{snap}, Featured{TopRated: []string{"f"}})

	top := d.TopRated(context.Background())
	if top.Curated || !slices.Equal(ids(top.Entries), []string{"b"}) {
		t.Errorf("TopRated() = %+v", top)
	}
}

func TestDirectory_NilSnapshot(t *testing.T) {
	d, _ := New(testTools(), staticStats{}, Featured{Trending: []string{"a"}})
	if got := d.StatsFor(context.Background(), "a"); got != (stats.Record{}) {
		t.Errorf("StatsFor() = %+v, want zero", got)
	}
	if r := d.Trending(context.Background()); !r.Curated || len(r.Entries) != 1 {
		t.Errorf("Trending() = %+v", r)
	}
}

func TestDirectory_ResolveAndGroups(t *testing.T) {
	snap := stats.NewSnapshot([]stats.Row{{ToolID: "c", ViewCount: 7}}, time.Now())
	d, _ := New(testTools(), staticStats{snap}, Featured{})

	got := d.Resolve(context.Background(), []string{"c", "nope", "a"})
	if !slices.Equal(ids(got), []string{"c", "a"}) || got[0].Stats.ViewCount != 7 {
		t.Errorf("Resolve() = %+v", got)
	}

	groups := d.ByCategory()
	if len(groups[catalog.CategoryAudio]) != 2 || len(groups[catalog.CategoryVideo]) != 0 {
		t.Errorf("ByCategory() = %v", groups)
	}

	popular := d.Popular()
	if len(popular) != 1 || popular[0].ID != "a" {
		t.Errorf("Popular() = %v", popular)
	}
}

func TestParseFeatured(t *testing.T) {
	f, err := ParseFeatured([]byte(`
trending:
  - pdf-merge
  - " audio-trim "
  - pdf-merge
  - ""
top_rated:
  - image-resize
`))
	if err != nil {
		t.Fatalf("ParseFeatured() error = %v", err)
	}
	if !slices.Equal(f.Trending, []string{"pdf-merge", "audio-trim"}) {
		t.Errorf("Trending = %v", f.Trending)
	}
	if !slices.Equal(f.TopRated, []string{"image-resize"}) {
		t.Errorf("TopRated = %v", f.TopRated)
	}

	if _, err := ParseFeatured([]byte("trending: {")); err == nil {
		t.Error("ParseFeatured(invalid) = nil error")
	}
}

func TestLoadFeatured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "featured.yaml")
	if err := os.WriteFile(path, []byte("top_rated: [a, b]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFeatured(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Trending) != 0 || !slices.Equal(f.TopRated, []string{"a", "b"}) {
		t.Errorf("LoadFeatured() = %+v", f)
	}

	if _, err := LoadFeatured(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFeatured(missing) = nil error")
	}
}
