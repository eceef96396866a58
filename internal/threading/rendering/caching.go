package rendering

import (
	"sync"
)

// Cache size constants - proactive limits prevent GC spikes from bulk eviction
const (
	columnCacheMaxSize    = 4096
	columnCacheTargetSize = 3072 // Target after eviction (75% of max)
)

// ColumnKey identifies one texel column of one source image.
type ColumnKey struct {
	Sheet int // Index of the source image
	X     int // Texel column within the sheet
}

// ColumnCache keeps per-column views of source images so the GPU surface
// does not rebuild them every frame. Eviction is FIFO: once the cache is
// full the oldest entries are dropped down to the target size.
type ColumnCache[V any] struct {
	cache      map[ColumnKey]V
	mutex      sync.RWMutex
	cacheOrder []ColumnKey
	maxSize    int
	targetSize int
}

// NewColumnCache creates an empty cache with the default limits.
func NewColumnCache[V any]() *ColumnCache[V] {
	return NewColumnCacheSize[V](columnCacheMaxSize, columnCacheTargetSize)
}

// NewColumnCacheSize creates an empty cache holding at most maxSize entries
// and trimming to targetSize on overflow.
func NewColumnCacheSize[V any](maxSize, targetSize int) *ColumnCache[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	if targetSize < 0 || targetSize >= maxSize {
		targetSize = maxSize * 3 / 4
	}
	return &ColumnCache[V]{
		cache:      make(map[ColumnKey]V, maxSize),
		cacheOrder: make([]ColumnKey, 0, maxSize),
		maxSize:    maxSize,
		targetSize: targetSize,
	}
}

// GetOrCreate returns the cached value for key, calling createFunc on a miss.
func (cc *ColumnCache[V]) GetOrCreate(key ColumnKey, createFunc func() V) V {
	// First attempt: read lock only
	cc.mutex.RLock()
	if v, exists := cc.cache[key]; exists {
		cc.mutex.RUnlock()
		return v
	}
	cc.mutex.RUnlock()

	newValue := createFunc()

	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	// Check again in case another goroutine added it while we were creating
	if v, exists := cc.cache[key]; exists {
		return v
	}

	if len(cc.cache) >= cc.maxSize {
		evictCount := len(cc.cacheOrder) - cc.targetSize
		if evictCount > 0 && evictCount <= len(cc.cacheOrder) {
			for i := 0; i < evictCount; i++ {
				delete(cc.cache, cc.cacheOrder[i])
			}
			cc.cacheOrder = append(cc.cacheOrder[:0], cc.cacheOrder[evictCount:]...)
		}
	}

	cc.cache[key] = newValue
	cc.cacheOrder = append(cc.cacheOrder, key)
	return newValue
}

// Len reports the number of cached entries.
func (cc *ColumnCache[V]) Len() int {
	cc.mutex.RLock()
	defer cc.mutex.RUnlock()
	return len(cc.cache)
}

// Clear drops every entry.
func (cc *ColumnCache[V]) Clear() {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()
	clear(cc.cache)
	cc.cacheOrder = cc.cacheOrder[:0]
}
