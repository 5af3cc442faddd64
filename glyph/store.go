package glyph

import (
	"strconv"

	"github.com/gogpu/tileworker/sharded"
)

// Store is a concurrency-safe cache of rasterized glyph positions, shared
// across every tile worker in a map renderer. Many tile workers request
// overlapping (font, glyph) pairs as the viewport pans; Store lets a
// worker's onGlyphsAvailable handler populate its own per-tile Positions
// snapshot from already-rasterized entries instead of re-requesting glyphs
// the provider already answered for a neighboring tile.
//
// Grounded on text/glyph_cache.go's glyph outline LRU in the teacher
// codebase, generalized from a single-threaded per-context cache to the
// sharded.Cache used for any value shared across goroutines.
type Store struct {
	cache *sharded.Cache[string, Position]
}

// NewStore creates a glyph position store with the given per-shard
// capacity. A capacity <= 0 uses sharded.DefaultCapacity.
func NewStore(capacity int) *Store {
	return &Store{cache: sharded.New[string, Position](capacity, sharded.StringHasher)}
}

// Get retrieves a previously stored position for (font, glyph).
func (s *Store) Get(font FontID, g ID) (Position, bool) {
	return s.cache.Get(storeKey(font, g))
}

// Put records a rasterized position for (font, glyph), as received from a
// provider's onGlyphsAvailable response.
func (s *Store) Put(font FontID, g ID, pos Position) {
	s.cache.Set(storeKey(font, g), pos)
}

// Fill populates dst (typically a tile's per-layout Positions map) with
// every entry from req that this store already has cached, returning the
// subset of req still missing — the set the worker must actually request
// from the provider via getGlyphs.
func (s *Store) Fill(dst Positions, req Dependencies) Dependencies {
	missing := NewDependencies()
	for font, glyphs := range req {
		for g := range glyphs {
			if pos, ok := s.Get(font, g); ok {
				if dst[font] == nil {
					dst[font] = make(map[ID]Position)
				}
				dst[font][g] = pos
				continue
			}
			missing.Add(font, g)
		}
	}
	return missing
}

// Absorb records every (font, glyph, position) triple in p into the store,
// so fresh rasterizations received for one tile can be reused by sibling
// workers. The worker's own onGlyphsAvailable handling does not call it.
func (s *Store) Absorb(p Positions) {
	for font, glyphs := range p {
		for g, pos := range glyphs {
			s.Put(font, g, pos)
		}
	}
}

func storeKey(font FontID, g ID) string {
	return font.Name + "\x00" + font.Tag.String() + "\x00" + strconv.FormatUint(uint64(g), 10)
}
