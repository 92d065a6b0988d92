// Package cache memoizes chunking results keyed by content fingerprint
// plus configuration fingerprint, with TTL-based lazy expiry and an LRU
// capacity bound.
//
//	c := cache.New(1000)
//	chunks, hit, err := c.GetOrCompute(content, config, compute)
//
// Entries are inserted atomically as whole records; a simultaneous
// first-access race for the same key may compute twice, which is
// accepted in place of single-flight machinery.
package cache
