package assets

// Library loads artifact bundles from one directory and caches them by
// normalized name, so patching many targets against the same replacement
// font parses each bundle once.
type Library struct {
	dir   string
	cache *Cache[string, *FontAssets]
}

// NewLibrary creates a library over dir caching up to capacity bundles.
func NewLibrary(dir string, capacity int) *Library {
	return &Library{
		dir:   dir,
		cache: NewCache[string, *FontAssets](capacity),
	}
}

// Load returns the bundle for fontName, from cache when possible. Bundles
// are cached under the name as given; callers that pre-normalize get
// better hit rates across suffix spellings.
func (l *Library) Load(fontName string) (*FontAssets, error) {
	return l.cache.GetOrCreate(fontName, func() (*FontAssets, error) {
		return Load(l.dir, fontName)
	})
}

// Stats exposes the underlying cache's hit and miss counters.
func (l *Library) Stats() (hits, misses int64) {
	return l.cache.Stats()
}
