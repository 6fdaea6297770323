// Package hidusage loads the HID Usage Table (HUT) text files and exposes
// page/usage name lookups. It is the only decoding package that touches the
// filesystem; the item, report, decode and print packages work on in-memory
// data (config loading and the CLI read files separately).
package hidusage

import (
	"sync"

	"github.com/cornelk/hashmap"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Table is a read-only, concurrency-safe usage-name database. Once Load
// completes, a Table never mutates again, so it is safe to share across
// goroutines without further synchronization.
type Table struct {
	pages  *hashmap.Map[uint16, string]
	usages *hashmap.Map[uint32, string]
	// order preserves the sequence pages were discovered in, for
	// deterministic diagnostic dumps.
	order *orderedmap.OrderedMap[uint16, string]
}

// newTable allocates the concurrent maps backing a Table.
func newTable() *Table {
	return &Table{
		pages:  hashmap.New[uint16, string](),
		usages: hashmap.New[uint32, string](),
		order:  orderedmap.New[uint16, string](),
	}
}

// PageName returns the human-readable name of a usage page, or ("", false)
// if the page is unknown. Callers must render "0xNNNN" themselves in that
// case.
func (t *Table) PageName(page uint16) (string, bool) {
	return t.pages.Get(page)
}

// UsageName returns the human-readable name of a combined 32-bit usage
// ((page<<16)|id), or ("", false) if unknown.
func (t *Table) UsageName(usage uint32) (string, bool) {
	return t.usages.Get(usage)
}

// Pages returns the set of known page IDs in discovery order.
func (t *Table) Pages() []uint16 {
	ids := make([]uint16, 0, t.order.Len())
	for pair := t.order.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Load builds a Table from every ".hut" file in dir. It is the explicit,
// non-singleton entry point — use it to build multiple independent tables
// (e.g. in tests) or a custom data directory.
func Load(dir string) (*Table, error) {
	return loadDir(dir)
}

// LoadDefault lazily loads the process-wide Table from dir on first call.
// Subsequent calls, with any dir argument, return the already-loaded table
// (or its load error) without touching the filesystem again — at most one
// goroutine performs the load; all others block until it completes.
func LoadDefault(dir string) (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = loadDir(dir)
	})
	return defaultTable, defaultErr
}
