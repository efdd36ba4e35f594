package cache

// Cache defines a generic keyed cache.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)

	// Purge empties the cache.
	Purge()

	Size() int
}

var _ Cache[string] = (*LRUCache[string])(nil)
