package annotated

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"
)

// DefaultCacheSize is the number of results a [Cache] keeps by default.
const DefaultCacheSize = 128

// Cache memoizes [ParseResult] values by the BLAKE3 digest of their source,
// so unchanged content is never parsed twice while any change produces a
// fresh result. Safe for concurrent use.
//
// Cached results are shared between callers and must not be modified.
type Cache struct {
	parser  *Parser
	results *lru.Cache[[32]byte, *ParseResult]
}

// NewCache creates a [Cache] holding up to size results produced by p.
// A nil p uses default settings.
func NewCache(p *Parser, size int) (*Cache, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: cache size must be at least 1, got %d", ErrInvalidOption, size)
	}

	if p == nil {
		p = NewParser()
	}

	results, err := lru.New[[32]byte, *ParseResult](size)
	if err != nil {
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}

	return &Cache{parser: p, results: results}, nil
}

// Parse returns the cached result for src, parsing it on a miss.
func (c *Cache) Parse(src string) *ParseResult {
	key := blake3.Sum256([]byte(src))

	if r, ok := c.results.Get(key); ok {
		return r
	}

	r := c.parser.Parse(src)
	c.results.Add(key, r)

	return r
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.results.Len()
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.results.Purge()
}
