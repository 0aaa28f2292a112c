package cache

// ScopedKeyer namespaces another Keyer so several deployments (or the CLI
// and the server) can share one Redis without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes every key produced by inner. A nil inner means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) AnalysisKey(h string, o AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(h, o)
}

func (k *ScopedKeyer) LayoutKey(h string, o LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(h, o)
}

func (k *ScopedKeyer) ArtifactKey(h string, o ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(h, o)
}
