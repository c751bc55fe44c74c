package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Several tools sharing one Redis instance use it to keep their keys apart.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "edgecross:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// MetricKey generates a prefixed key for metric result caching.
func (k *ScopedKeyer) MetricKey(docHash string, opts MetricKeyOpts) string {
	return k.prefix + k.inner.MetricKey(docHash, opts)
}

// LocalKey generates a prefixed key for restricted count caching.
func (k *ScopedKeyer) LocalKey(docHash string, opts LocalKeyOpts) string {
	return k.prefix + k.inner.LocalKey(docHash, opts)
}
