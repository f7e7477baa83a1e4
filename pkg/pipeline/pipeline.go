// Package pipeline provides the resolve → generate → render pipeline.
//
// The pipeline ties the catalog layer to the graph generator and the
// rendering boundary, with caching between the stages so repeated runs with
// the same inputs are cheap. Both the CLI and library consumers use it, so
// caching behavior stays identical across entry points.
//
// # Architecture
//
// Three stages:
//
//  1. Resolve: expand the root course set into the transitive requirement
//     mapping via a catalog Fetcher
//  2. Generate: transform the requirement forest into a DOT graph
//  3. Render: produce output artifacts (dot, svg, png)
//
// Generated graphs are cached by root set and generation options; rendered
// artifacts are cached by graph hash, format, and the style fingerprint, so
// changing the static style configuration invalidates stale renders.
//
// # Usage
//
//	runner := pipeline.NewRunner(fetcher, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Roots:   []string{"COM SCI 180"},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"time"

	"github.com/coursegraph/coursegraph/pkg/errors"
	"github.com/coursegraph/coursegraph/pkg/filter"
)

// Defaults shared by every pipeline consumer.
const (
	// DefaultMaxDepth bounds prerequisite expansion below the roots.
	DefaultMaxDepth = 10

	// DefaultMaxCourses bounds the number of catalog lookups per run.
	DefaultMaxCourses = 2000

	// DefaultGraphTTL is how long generated graphs stay cached.
	DefaultGraphTTL = 24 * time.Hour

	// DefaultArtifactTTL is how long rendered artifacts stay cached.
	// Artifact keys include the style fingerprint, so a style change makes
	// old entries unreachable long before they expire.
	DefaultArtifactTTL = 7 * 24 * time.Hour
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormats checks that every requested format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", f)
		}
	}
	return nil
}

// Options configures one pipeline execution.
type Options struct {
	// Roots are the course identifiers to expand from. Required.
	Roots []string

	// Filter configures course filtering and gate materialization.
	Filter filter.Options

	// MaxDepth bounds prerequisite expansion (default: DefaultMaxDepth).
	MaxDepth int

	// MaxCourses bounds catalog lookups (default: DefaultMaxCourses).
	MaxCourses int

	// Formats lists the artifacts to produce (default: dot).
	Formats []string

	// Refresh bypasses the graph and artifact caches.
	Refresh bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Roots) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one root course is required")
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxCourses <= 0 {
		o.MaxCourses = DefaultMaxCourses
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	return ValidateFormats(o.Formats)
}

// Stats reports timing and size information for one execution.
type Stats struct {
	ResolveTime  time.Duration
	GenerateTime time.Duration
	RenderTime   time.Duration
	Courses      int
	Nodes        int
	Edges        int
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	GraphHit  bool
	RenderHit bool
}

// Result holds the outputs of one pipeline execution.
type Result struct {
	// DOT is the generated graph description.
	DOT string
	// GraphHash identifies the DOT text, used in artifact cache keys.
	GraphHash string
	// Artifacts maps format name to rendered bytes. The "dot" artifact is
	// the DOT text itself.
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// String summarizes the result for logging.
func (r *Result) String() string {
	return fmt.Sprintf("%d courses, %d nodes, %d edges", r.Stats.Courses, r.Stats.Nodes, r.Stats.Edges)
}
