package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coursegraph/coursegraph/pkg/cache"
	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/dot"
	cgerrors "github.com/coursegraph/coursegraph/pkg/errors"
)

// Runner executes the pipeline against one catalog source with caching.
// It is stateless apart from the fetcher, cache and logger, so one Runner
// can serve concurrent executions with different options.
type Runner struct {
	Fetcher catalog.Fetcher
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
}

// NewRunner creates a runner.
// A nil cache disables caching; a nil keyer uses the default key scheme;
// a nil logger uses the package default.
func NewRunner(fetcher catalog.Fetcher, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fetcher: fetcher, Cache: c, Keyer: keyer, Logger: logger}
}

// graphEnvelope is the cached form of a generated graph: the DOT text plus
// the counts that would otherwise be lost on a cache hit.
type graphEnvelope struct {
	DOT     string `json:"dot"`
	Courses int    `json:"courses"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
}

// Execute runs resolve → generate → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	start := time.Now()
	env, graphHit, resolveTime, err := r.generateWithCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.DOT = env.DOT
	result.GraphHash = cache.Hash([]byte(env.DOT))
	result.Stats.Courses = env.Courses
	result.Stats.Nodes = env.Nodes
	result.Stats.Edges = env.Edges
	result.Stats.ResolveTime = resolveTime
	result.Stats.GenerateTime = time.Since(start)
	result.CacheInfo.GraphHit = graphHit

	r.Logger.Info("generated graph",
		"courses", env.Courses,
		"nodes", env.Nodes,
		"edges", env.Edges,
		"cached", graphHit,
		"duration", result.Stats.GenerateTime.Round(time.Millisecond))

	renderStart := time.Now()
	renderHit, err := r.renderArtifacts(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	return result, nil
}

// generateWithCache returns the generated graph for the options, serving it
// from cache when possible. The duration reports the catalog resolution
// time; it is zero on a cache hit, where no resolution happens.
func (r *Runner) generateWithCache(ctx context.Context, opts Options) (graphEnvelope, bool, time.Duration, error) {
	key := r.Keyer.GraphKey(opts.Roots, cache.GraphKeyOpts{
		Departments:   opts.Filter.Departments,
		Locations:     locationStrings(opts),
		IncludeNotes:  opts.Filter.IncludeNotes,
		IncludeGrades: opts.Filter.IncludeGrades,
		MaxDepth:      opts.MaxDepth,
		MaxCourses:    opts.MaxCourses,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var env graphEnvelope
			if err := json.Unmarshal(data, &env); err == nil {
				return env, true, 0, nil
			}
		}
	}

	resolveStart := time.Now()
	records, err := catalog.Resolve(ctx, r.Fetcher, opts.Roots, catalog.Options{
		MaxDepth:   opts.MaxDepth,
		MaxCourses: opts.MaxCourses,
		Logger:     r.Logger.Warnf,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			return graphEnvelope{}, false, 0, cgerrors.Wrap(cgerrors.ErrCodeCourseNotFound, err, "resolve prerequisites")
		}
		return graphEnvelope{}, false, 0, fmt.Errorf("resolve: %w", err)
	}
	resolveTime := time.Since(resolveStart)
	r.Logger.Debug("resolved catalog",
		"courses", len(records),
		"duration", resolveTime.Round(time.Millisecond))

	entries := make([]dot.Entry, len(records))
	for i, rec := range records {
		entries[i] = dot.Entry{Course: rec.Course, Req: rec.Req}
	}
	g := dot.Generate(opts.Filter, entries)

	env := graphEnvelope{
		DOT:     g.String(),
		Courses: len(records),
		Nodes:   g.NodeCount(),
		Edges:   g.EdgeCount(),
	}
	if data, err := json.Marshal(env); err == nil {
		_ = r.Cache.Set(ctx, key, data, DefaultGraphTTL)
	}
	return env, false, resolveTime, nil
}

// renderArtifacts fills result.Artifacts for every requested format.
// Reports whether every non-DOT artifact came from cache.
func (r *Runner) renderArtifacts(ctx context.Context, result *Result, opts Options) (bool, error) {
	allHit := true
	fingerprint := dot.StyleFingerprint()

	for _, format := range opts.Formats {
		if format == FormatDOT {
			result.Artifacts[FormatDOT] = []byte(result.DOT)
			continue
		}

		key := r.Keyer.ArtifactKey(result.GraphHash, format, fingerprint)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				result.Artifacts[format] = data
				continue
			}
		}
		allHit = false

		data, err := r.render(ctx, result.DOT, format)
		if err != nil {
			return false, cgerrors.Wrap(cgerrors.ErrCodeInternal, err, "render %s", format)
		}
		result.Artifacts[format] = data
		_ = r.Cache.Set(ctx, key, data, DefaultArtifactTTL)
	}
	return allHit, nil
}

func (r *Runner) render(ctx context.Context, dotText, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return dot.RenderSVG(ctx, dotText)
	case FormatPNG:
		return dot.RenderPNG(ctx, dotText)
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

func locationStrings(opts Options) []string {
	locs := make([]string, len(opts.Filter.Locations))
	for i, l := range opts.Filter.Locations {
		locs[i] = string(l)
	}
	return locs
}
