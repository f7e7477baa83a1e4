package cache

// Keyer derives cache keys for the data the pipeline caches.
// Centralizing key derivation keeps CLI and library consumers compatible:
// a graph cached by one is found by the other.
type Keyer interface {
	// CatalogKey identifies one course's catalog record from one source.
	CatalogKey(source, course string) string

	// GraphKey identifies a generated DOT graph for a root set and options.
	GraphKey(roots []string, opts GraphKeyOpts) string

	// ArtifactKey identifies a rendered artifact for a graph and format.
	// The style fingerprint is part of the key, so changing the static
	// style configuration invalidates all rendered artifacts.
	ArtifactKey(graphHash, format, styleFingerprint string) string
}

// GraphKeyOpts are the generation inputs that distinguish cached graphs.
type GraphKeyOpts struct {
	Departments   []string `json:"departments"`
	Locations     []string `json:"locations"`
	IncludeNotes  bool     `json:"include_notes"`
	IncludeGrades bool     `json:"include_grades"`
	MaxDepth      int      `json:"max_depth"`
	MaxCourses    int      `json:"max_courses"`
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard Keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// CatalogKey generates a key for one course's catalog record.
func (k *DefaultKeyer) CatalogKey(source, course string) string {
	return "catalog:" + source + ":" + course
}

// GraphKey generates a hashed key for a generated graph.
func (k *DefaultKeyer) GraphKey(roots []string, opts GraphKeyOpts) string {
	return hashKey("graph", roots, opts)
}

// ArtifactKey generates a hashed key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash, format, styleFingerprint string) string {
	return hashKey("artifact", graphHash, format, styleFingerprint)
}

// ScopedKeyer wraps a Keyer with a prefix so several catalogs (or tenants)
// can share one store without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer defaults to the standard scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// CatalogKey generates a prefixed catalog record key.
func (k *ScopedKeyer) CatalogKey(source, course string) string {
	return k.prefix + k.inner.CatalogKey(source, course)
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(roots []string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(roots, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(graphHash, format, styleFingerprint string) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, format, styleFingerprint)
}
