package cache

import (
	"strconv"
)

// Key identifies a cached universe. Identifiers are normalized to their
// integer form before keying, so "123" and "0123" address the same entry.
type Key int64

// String generates a deterministic key string.
// Format: likes:universe:<id>
//
// Example:
//
//	likes:universe:1818
func (k Key) String() string {
	return "likes:universe:" + strconv.FormatInt(int64(k), 10)
}
