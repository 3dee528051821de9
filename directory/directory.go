package directory

import (
	"context"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/stats"
)

// Tools supplies the currently loaded catalog. *catalog.ListView
// satisfies it.
type Tools interface {
	Tools() []catalog.Tool
}

// StatsReader supplies the current statistics snapshot. *stats.Cache
// satisfies it.
type StatsReader interface {
	Snapshot(ctx context.Context) *stats.Snapshot
}

// Entry is a tool with its usage statistics.
type Entry struct {
	Tool  catalog.Tool
	Stats stats.Record
}

// Ranking is a resolved ranking list.
type Ranking struct {
	Entries []Entry

	// Curated is true when the derived ranking was empty and the Featured
	// list was used.
	Curated bool
}

// Directory is the consuming context that joins catalog and stats.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Errors: never fails; missing data yields shorter or empty results.
type Directory struct {
	tools    Tools
	stats    StatsReader
	featured Featured
}

// New creates a Directory.
func New(tools Tools, st StatsReader, featured Featured) (*Directory, error) {
	if tools == nil {
		return nil, ErrNilTools
	}
	if st == nil {
		return nil, ErrNilStats
	}
	return &Directory{tools: tools, stats: st, featured: featured}, nil
}

// Trending resolves the top tools by views, or the curated list.
func (d *Directory) Trending(ctx context.Context) Ranking {
	snap := d.stats.Snapshot(ctx)
	return d.rank(snap, snap.Trending(), d.featured.Trending)
}

// TopRated resolves the top tools by rating, or the curated list.
func (d *Directory) TopRated(ctx context.Context) Ranking {
	snap := d.stats.Snapshot(ctx)
	return d.rank(snap, snap.TopRated(), d.featured.TopRated)
}

// StatsFor returns the record for id, zeroed when unknown.
func (d *Directory) StatsFor(ctx context.Context, id string) stats.Record {
	return d.stats.Snapshot(ctx).Record(id)
}

// Resolve maps ids to entries in order, skipping ids not in the catalog.
func (d *Directory) Resolve(ctx context.Context, ids []string) []Entry {
	return resolve(catalog.Index(d.tools.Tools()), d.stats.Snapshot(ctx), ids)
}

// ByCategory groups the loaded catalog by category.
func (d *Directory) ByCategory() map[catalog.Category][]catalog.Tool {
	return catalog.GroupByCategory(d.tools.Tools())
}

// Popular returns the tools flagged popular in catalog order.
func (d *Directory) Popular() []catalog.Tool {
	var out []catalog.Tool
	for _, t := range d.tools.Tools() {
		if t.Popular {
			out = append(out, t)
		}
	}
	return out
}

func (d *Directory) rank(snap *stats.Snapshot, derived, curated []string) Ranking {
	ids, isCurated := derived, false
	if len(derived) == 0 {
		ids, isCurated = curated, true
	}
	return Ranking{
		Entries: resolve(catalog.Index(d.tools.Tools()), snap, ids),
		Curated: isCurated,
	}
}

func resolve(index map[string]catalog.Tool, snap *stats.Snapshot, ids []string) []Entry {
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		t, ok := index[id]
		if !ok {
			continue
		}
		out = append(out, Entry{Tool: t, Stats: snap.Record(id)})
	}
	return out
}
