// Package layoutcache is an optional, opt-in cache mapping a
// descriptor's SHA-256 digest to its already-analyzed
// hidlayout.DescriptorLayout, so repeatedly analyzing the same
// descriptor (e.g. across repeated `hiddesc analyze` runs with a cache
// directory configured) skips re-running the analyzer. It is never
// consulted by pkg/analyzer itself — callers opt in explicitly.
package layoutcache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/gpineda-dev/hiddesc/pkg/hidlayout"
)

// Cache combines an in-process xsync map (hot path, avoids a badger
// lookup for a descriptor analyzed earlier in the same process) with a
// badger-backed on-disk store (persists across process restarts).
type Cache struct {
	db  *badger.DB
	hot *xsync.MapOf[string, *hidlayout.DescriptorLayout]
}

// Open opens (or creates) a badger database at dir for persistent
// caching.
func Open(dir string) (*Cache, error) {
	db, err := badger.Open(badger.DefaultOptions(dir))
	if err != nil {
		return nil, fmt.Errorf("open layout cache at %s: %w", dir, err)
	}
	return &Cache{db: db, hot: xsync.NewMapOf[string, *hidlayout.DescriptorLayout]()}, nil
}

// Close releases the underlying badger database.
func (c *Cache) Close() error { return c.db.Close() }

// Key returns the cache key for a raw descriptor byte stream.
func Key(descriptor []byte) string {
	sum := sha256.Sum256(descriptor)
	return fmt.Sprintf("%x", sum)
}

// Get returns the cached layout for key, if present.
func (c *Cache) Get(key string) (*hidlayout.DescriptorLayout, bool) {
	if layout, ok := c.hot.Load(key); ok {
		return layout, true
	}
	var snapshot snapshot
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})
	if err != nil {
		return nil, false
	}
	layout := snapshot.toLayout()
	c.hot.Store(key, layout)
	return layout, true
}

// Put stores layout under key, both in the hot map and on disk.
func (c *Cache) Put(key string, layout *hidlayout.DescriptorLayout) error {
	c.hot.Store(key, layout)
	data, err := json.Marshal(newSnapshot(layout))
	if err != nil {
		return fmt.Errorf("marshal layout snapshot: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// snapshot is the on-disk JSON form of a DescriptorLayout: a flat field
// list, since hidlayout.DescriptorLayout itself has no exported
// constructor from arbitrary fields.
type snapshot struct {
	Fields []*hidlayout.Field `json:"fields"`
}

func newSnapshot(layout *hidlayout.DescriptorLayout) snapshot {
	return snapshot{Fields: layout.Fields()}
}

func (s snapshot) toLayout() *hidlayout.DescriptorLayout {
	layout := hidlayout.NewDescriptorLayout()
	for _, f := range s.Fields {
		_ = layout.AddField(f)
	}
	return layout
}
