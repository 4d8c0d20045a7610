package component

import (
	"sync"

	"github.com/lixenwraith/flexterm/geom"
)

// maxCacheEntries bounds the offscreen cache; it is cleared when full
const maxCacheEntries = 4096

// GlobalData is state shared by every component: terminal size and a cache
// engines use for derived render data
type GlobalData struct {
	mu         sync.RWMutex
	windowSize geom.Size
	cache      map[string]any
}

// NewGlobalData creates global data for the given window size
func NewGlobalData(size geom.Size) *GlobalData {
	return &GlobalData{
		windowSize: size,
		cache:      make(map[string]any),
	}
}

// WindowSize returns the last known terminal size
func (g *GlobalData) WindowSize() geom.Size {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.windowSize
}

// SetWindowSize records a resize and drops cached data
func (g *GlobalData) SetWindowSize(size geom.Size) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.windowSize == size {
		return
	}
	g.windowSize = size
	clear(g.cache)
}

// CacheGet returns a cached value
func (g *GlobalData) CacheGet(key string) (any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.cache[key]
	return v, ok
}

// CachePut stores a value
func (g *GlobalData) CachePut(key string, v any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cache == nil {
		g.cache = make(map[string]any)
	}
	if len(g.cache) >= maxCacheEntries {
		clear(g.cache)
	}
	g.cache[key] = v
}

// CacheLen returns the number of cached entries
func (g *GlobalData) CacheLen() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cache)
}
