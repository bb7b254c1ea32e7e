package pathfind

import (
	"math"

	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// cacheKey identifies a search by its rounded start and goal grid cells.
type cacheKey struct {
	sx, sy, gx, gy int
}

func keyFor(start, goal core.Vec, gridSize float64) cacheKey {
	return cacheKey{
		sx: int(math.Round(start.X / gridSize)),
		sy: int(math.Round(start.Y / gridSize)),
		gx: int(math.Round(goal.X / gridSize)),
		gy: int(math.Round(goal.Y / gridSize)),
	}
}

// Cache is a bounded path cache. When full it evicts the oldest inserted key,
// not the least recently used one.
type Cache struct {
	limit   int
	entries map[cacheKey][]core.Vec
	order   []cacheKey
}

// NewCache creates a cache holding at most limit paths. A limit <= 0 disables caching.
func NewCache(limit int) *Cache {
	return &Cache{
		limit:   limit,
		entries: make(map[cacheKey][]core.Vec),
	}
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) get(k cacheKey) ([]core.Vec, bool) {
	p, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	return clonePath(p), true
}

func (c *Cache) put(k cacheKey, path []core.Vec) {
	if c.limit <= 0 {
		return
	}
	if _, exists := c.entries[k]; !exists {
		c.order = append(c.order, k)
	}
	c.entries[k] = clonePath(path)

	for len(c.entries) > c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Clear drops every cached path.
func (c *Cache) Clear() {
	clear(c.entries)
	c.order = c.order[:0]
}

func clonePath(p []core.Vec) []core.Vec {
	out := make([]core.Vec, len(p))
	copy(out, p)
	return out
}
