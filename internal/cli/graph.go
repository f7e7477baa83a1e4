package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/catalog/httpapi"
	"github.com/coursegraph/coursegraph/pkg/catalog/postgres"
	"github.com/coursegraph/coursegraph/pkg/errors"
	"github.com/coursegraph/coursegraph/pkg/filter"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

// Catalog source types.
const (
	sourceFile     = "file"
	sourceHTTP     = "http"
	sourcePostgres = "postgres"
)

// graphFlags holds the command-line flags for the graph command.
type graphFlags struct {
	source      string // catalog source type: file, http, postgres
	catalog     string // source location: file path, base URL, or DSN
	filters     string // path to a TOML filter file
	departments string // comma-separated department prefixes
	locations   string // comma-separated campus locations
	notes       bool   // include free-text prerequisite notes
	grades      bool   // include grade-threshold gates
	output      string // output file or base path
	formatsStr  string // comma-separated output formats
	noCache     bool   // disable caching entirely
	refresh     bool   // bypass cached graphs and artifacts
	maxDepth    int    // maximum prerequisite depth
	maxCourses  int    // maximum catalog lookups
}

// graphCommand creates the graph command for generating prerequisite graphs.
func (c *CLI) graphCommand() *cobra.Command {
	flags := graphFlags{
		source:     sourceFile,
		maxDepth:   pipeline.DefaultMaxDepth,
		maxCourses: pipeline.DefaultMaxCourses,
	}

	cmd := &cobra.Command{
		Use:   "graph [courses...]",
		Short: "Generate a prerequisite graph for one or more courses",
		Long: `Generate a prerequisite graph for one or more courses.

The graph command fetches the named courses from a catalog source, expands
their prerequisites transitively, and emits a Graphviz DOT digraph. With
--format svg or png the graph is also rendered via Graphviz.

Results are cached locally for faster subsequent runs.`,
		Example: `  # DOT graph for one course, from a catalog file
  coursegraph graph --catalog catalog.json "COMP SCI 400"

  # SVG for two courses, computer-science department only
  coursegraph graph --catalog catalog.json --departments "COMP SCI" \
    -f svg -o prereqs.svg "COMP SCI 537" "COMP SCI 564"

  # Against a catalog HTTP API
  coursegraph graph --source http --catalog https://catalog.example.edu/api "MATH 340"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(cmd, args, &flags)
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), opts, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.source, "source", "s", flags.source, "catalog source: file (default), http, postgres")
	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "catalog location: file path, base URL, or connection string")
	cmd.Flags().StringVar(&flags.filters, "filters", "", "TOML file with filter options")
	cmd.Flags().StringVarP(&flags.departments, "departments", "d", "", "department prefixes to include (comma-separated)")
	cmd.Flags().StringVarP(&flags.locations, "locations", "l", "", "campus locations to include (comma-separated)")
	cmd.Flags().BoolVar(&flags.notes, "notes", false, "include free-text prerequisite notes as nodes")
	cmd.Flags().BoolVar(&flags.grades, "grades", false, "include minimum-grade gates as nodes")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formatsStr, "format", "f", "", "output format(s): dot (default), svg, png (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", flags.maxDepth, "maximum prerequisite depth")
	cmd.Flags().IntVar(&flags.maxCourses, "max-courses", flags.maxCourses, "maximum courses to fetch")

	return cmd
}

// pipelineOptions builds pipeline.Options from flags, with the TOML filter
// file (if any) as the base and explicit flags layered on top.
func (c *CLI) pipelineOptions(cmd *cobra.Command, roots []string, flags *graphFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		Roots:      roots,
		MaxDepth:   flags.maxDepth,
		MaxCourses: flags.maxCourses,
		Formats:    parseFormats(flags.formatsStr),
		Refresh:    flags.refresh,
	}

	if flags.filters != "" {
		loaded, err := filter.LoadOptions(flags.filters)
		if err != nil {
			return opts, fmt.Errorf("load filters %s: %w", flags.filters, err)
		}
		opts.Filter = loaded
	}

	if flags.departments != "" {
		opts.Filter.Departments = splitList(flags.departments)
	}
	if flags.locations != "" {
		opts.Filter.Locations = nil
		for _, l := range splitList(flags.locations) {
			opts.Filter.Locations = append(opts.Filter.Locations, filter.Location(l))
		}
	}
	if cmd.Flags().Changed("notes") {
		opts.Filter.IncludeNotes = flags.notes
	}
	if cmd.Flags().Changed("grades") {
		opts.Filter.IncludeGrades = flags.grades
	}

	return opts, pipeline.ValidateFormats(opts.Formats)
}

// runGraph builds the catalog source, executes the pipeline, and writes output.
func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, flags *graphFlags) error {
	fetcher, closeFn, err := c.newFetcher(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize catalog source: %w", err)
	}
	defer closeFn()

	runner, err := c.newRunner(ctx, fetcher, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Expanding prerequisites for %s...", strings.Join(opts.Roots, ", ")))
	spinner.Start()
	prog := newProgress(c.Logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Graph generation failed")
		return err
	}
	spinner.Stop()
	prog.done("Expanded " + result.String())

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Stdout only makes sense for a single DOT artifact.
	toStdout := len(opts.Formats) == 1 && opts.Formats[0] == pipeline.FormatDOT
	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		fallback:  defaultBaseName(opts.Roots),
		output:    flags.output,
		toStdout:  toStdout,
	}); err != nil {
		return err
	}

	if !toStdout || flags.output != "" {
		printSuccess("Graph complete")
		printStats(result.Stats.Courses, result.Stats.Nodes, result.Stats.Edges, result.CacheInfo.GraphHit)
	}
	return nil
}

// newFetcher builds the catalog fetcher for the configured source.
// The returned func releases the source's resources.
func (c *CLI) newFetcher(ctx context.Context, flags *graphFlags) (catalog.Fetcher, func(), error) {
	noop := func() {}
	if flags.catalog == "" {
		return nil, noop, fmt.Errorf("--catalog is required")
	}

	switch flags.source {
	case sourceFile:
		src, err := catalog.NewFileSource(flags.catalog)
		if err != nil {
			return nil, noop, err
		}
		c.Logger.Debugf("Loaded catalog file %s (%d courses)", flags.catalog, src.Len())
		return src, noop, nil

	case sourceHTTP:
		store, err := newCache(ctx, flags.noCache)
		if err != nil {
			return nil, noop, err
		}
		client := httpapi.NewClient(httpapi.Config{
			BaseURL: flags.catalog,
			Cache:   store,
		})
		return client, func() { store.Close() }, nil

	case sourcePostgres:
		src, err := postgres.NewSource(ctx, flags.catalog)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil

	default:
		return nil, noop, errors.New(errors.ErrCodeInvalidSource, "unknown source: %s (must be 'file', 'http', or 'postgres')", flags.source)
	}
}

// defaultBaseName derives an output base name from the root courses.
func defaultBaseName(roots []string) string {
	name := strings.ToLower(roots[0])
	name = strings.ReplaceAll(name, " ", "_")
	if len(roots) > 1 {
		name += "_and_more"
	}
	return name
}

// splitList splits a comma-separated flag value, trimming whitespace.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
