package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis database without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TreeKey(width int, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(width, opts)
}

// ArtifactKey prefixes the artifact key. treeKey is passed through as is.
func (k *ScopedKeyer) ArtifactKey(treeKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeKey, opts)
}
