package highlight

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// Renderer produces spans for a piece of text in one domain.
type Renderer interface {
	Render(text string, mode Mode) (StyledText, error)
}

// Config sizes the two domains and picks the initial mode.
type Config struct {
	RhymeCapacity int
	WordCapacity  int
	Mode          Mode
}

// Stats holds cache counters.
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// Cache memoizes rendered spans per domain, keyed by the exact source text. Highlights do not
// depend on scoring settings, so nothing here is invalidated when settings change.
type Cache struct {
	mu       sync.Mutex
	rhymes   *lru.Cache[string, StyledText]
	words    *lru.Cache[string, StyledText]
	mode     Mode
	renderer Renderer

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a cache. Both capacities must be positive.
func New(cfg Config, renderer Renderer) (cache *Cache, err error) {
	if renderer == nil {
		err = errors.New("highlight renderer is required")
		return cache, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeRhythm
	}

	cache = &Cache{
		mode:     mode,
		renderer: renderer,
	}

	cache.rhymes, err = lru.NewWithEvict[string, StyledText](cfg.RhymeCapacity, cache.handleEviction)
	if err != nil {
		err = errors.Wrapf(err, "invalid rhyme highlight capacity %d", cfg.RhymeCapacity)
		return nil, err
	}

	cache.words, err = lru.NewWithEvict[string, StyledText](cfg.WordCapacity, cache.handleEviction)
	if err != nil {
		err = errors.Wrapf(err, "invalid word highlight capacity %d", cfg.WordCapacity)
		return nil, err
	}

	return cache, err
}

func (c *Cache) handleEviction(_ string, _ StyledText) {
	c.evictions.Add(1)
}

// SetMode switches the active domain. Cached entries of both domains are kept.
func (c *Cache) SetMode(mode Mode) {
	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()
}

// Mode returns the active domain.
func (c *Cache) Mode() (mode Mode) {
	c.mu.Lock()
	mode = c.mode
	c.mu.Unlock()
	return mode
}

// GetOrRender renders text in the active mode.
func (c *Cache) GetOrRender(text string) (styled StyledText, err error) {
	styled, err = c.GetOrRenderMode(text, c.Mode())
	return styled, err
}

// GetOrRenderMode returns the cached spans for text in mode, rendering and storing them on a
// miss. ModeDisabled returns the text unstyled without touching the caches. Render failures
// are not cached.
func (c *Cache) GetOrRenderMode(text string, mode Mode) (styled StyledText, err error) {
	if mode == ModeDisabled {
		styled = Plain(text)
		return styled, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var domain *lru.Cache[string, StyledText]
	domain, err = c.domain(mode)
	if err != nil {
		return styled, err
	}

	if cached, ok := domain.Get(text); ok {
		c.hits.Add(1)
		styled = cached.clone()
		return styled, err
	}
	c.misses.Add(1)

	styled, err = c.renderer.Render(text, mode)
	if err != nil {
		err = errors.Wrapf(err, "failed to render %s highlight", mode)
		return StyledText{}, err
	}

	domain.Add(text, styled.clone())
	return styled, err
}

// Len is the number of cached entries in the mode's domain.
func (c *Cache) Len(mode Mode) (n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	domain, err := c.domain(mode)
	if err != nil {
		return 0
	}
	n = domain.Len()
	return n
}

// Contains reports whether text is cached in the mode's domain, without touching recency.
func (c *Cache) Contains(text string, mode Mode) (ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	domain, err := c.domain(mode)
	if err != nil {
		return false
	}
	ok = domain.Contains(text)
	return ok
}

// Stats returns the hit, miss and eviction counters.
func (c *Cache) Stats() (stats Stats) {
	stats.Hits = c.hits.Load()
	stats.Misses = c.misses.Load()
	stats.Evictions = c.evictions.Load()

	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

func (c *Cache) domain(mode Mode) (domain *lru.Cache[string, StyledText], err error) {
	switch mode {
	case ModeRhythm:
		domain = c.rhymes
	case ModeWords:
		domain = c.words
	default:
		err = errors.Errorf("no highlight cache for mode %q", mode)
	}
	return domain, err
}
