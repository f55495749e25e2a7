// Package cache provides a small generic LRU cache used to memoise
// rendered glyphs.
//
//	c := cache.New[glyphKey, *Glyph](128)
//	c.Set(k, g)
//	g, ok := c.Get(k)
//
// The cache holds at most Capacity entries; inserting beyond that evicts
// the least recently used entry. A capacity of 0 disables caching: Set is
// a no-op and Get always misses.
//
// Cache is not safe for concurrent use; tinydisplay renders from a single
// goroutine.
package cache
