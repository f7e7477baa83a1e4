package catalog

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

const workers = 8

// Resolution limits.
const (
	// DefaultMaxDepth bounds how far the prerequisite structure is expanded
	// below the roots.
	DefaultMaxDepth = 10
	// DefaultMaxCourses bounds the total number of catalog lookups.
	DefaultMaxCourses = 2000
)

// Options configures transitive resolution.
type Options struct {
	MaxDepth   int                  // Maximum depth to traverse (default: 10)
	MaxCourses int                  // Maximum courses to fetch (default: 2000)
	Logger     func(string, ...any) // Progress/error callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxCourses <= 0 {
		opts.MaxCourses = DefaultMaxCourses
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Resolve expands a root course set into the full transitive prerequisite
// mapping by crawling the catalog with a bounded worker pool. Each resolved
// course appears exactly once.
//
// A root that cannot be fetched fails the whole resolution. A transitive
// reference missing from the catalog is logged and skipped: it still shows
// up in generated graphs as a leaf node through its dependents' requirement
// trees, it just contributes no requirements of its own.
//
// The returned records are ordered deterministically regardless of crawl
// scheduling: roots first in argument order, then all other courses sorted
// by name.
func Resolve(ctx context.Context, f Fetcher, roots []string, opts Options) ([]Record, error) {
	if len(roots) == 0 {
		return nil, nil
	}

	c := &crawler{
		ctx:     ctx,
		opts:    opts.WithDefaults(),
		fetch:   f.Fetch,
		records: make(map[string]Record),
		visited: make(map[string]bool),
		rootSet: make(map[string]bool, len(roots)),
		jobs:    make(chan job, workers*2),
		results: make(chan result, workers*2),
		done:    make(chan struct{}),
	}
	for _, r := range roots {
		c.rootSet[r] = true
	}
	return c.run(roots)
}

type crawler struct {
	ctx   context.Context
	opts  Options
	fetch func(context.Context, string) (Record, error)

	rootSet map[string]bool

	jobs    chan job
	results chan result
	done    chan struct{}
	wg      sync.WaitGroup
	senders sync.WaitGroup

	mu      sync.Mutex
	records map[string]Record
	visited map[string]bool
	pending int64
	count   int32
}

type job struct {
	course string
	depth  int
}

type result struct {
	job
	rec Record
	err error
}

func (c *crawler) run(roots []string) ([]Record, error) {
	for range workers {
		c.wg.Add(1)
		go c.worker()
	}

	queued := false
	for _, r := range roots {
		queued = c.enqueue(job{course: r}) || queued
	}
	if queued {
		if err := c.collect(); err != nil {
			close(c.done)
			go func() {
				// Drain so workers finishing in-flight jobs never block.
				for range c.results {
				}
			}()
			// Every sender must commit to its send or bail on done
			// before jobs can be closed.
			c.senders.Wait()
			close(c.jobs)
			c.wg.Wait()
			close(c.results)
			return nil, err
		}
	}

	close(c.done)
	c.senders.Wait()
	close(c.jobs)
	c.wg.Wait()

	return c.ordered(roots), nil
}

func (c *crawler) worker() {
	defer c.wg.Done()
	for j := range c.jobs {
		if c.ctx.Err() != nil {
			c.results <- result{job: j, err: c.ctx.Err()}
			continue
		}
		rec, err := c.fetch(c.ctx, j.course)
		c.results <- result{job: j, rec: rec, err: err}
	}
}

func (c *crawler) enqueue(j job) bool {
	c.mu.Lock()
	if c.visited[j.course] {
		c.mu.Unlock()
		return false
	}
	c.visited[j.course] = true
	c.mu.Unlock()

	atomic.AddInt64(&c.pending, 1)

	// The send happens off the collect goroutine to avoid a cycle between
	// jobs and results when both are full. Senders are counted so shutdown
	// can wait for every one to park on done or finish its send before
	// jobs is closed.
	c.senders.Add(1)
	go func() {
		defer c.senders.Done()
		select {
		case c.jobs <- j:
		case <-c.done:
		}
	}()
	return true
}

func (c *crawler) collect() error {
	for {
		select {
		case r := <-c.results:
			if err := c.handle(r); err != nil {
				return err
			}
			if atomic.AddInt64(&c.pending, -1) == 0 {
				return nil
			}
		case <-c.ctx.Done():
			return c.ctx.Err()
		}
	}
}

func (c *crawler) handle(r result) error {
	if r.err != nil {
		if c.rootSet[r.course] {
			return r.err
		}
		if errors.Is(r.err, ErrCourseNotFound) {
			c.opts.Logger("course not in catalog: %s", r.course)
		} else {
			c.opts.Logger("fetch failed: %s: %v", r.course, r.err)
		}
		return nil
	}

	c.mu.Lock()
	c.records[r.course] = r.rec
	c.mu.Unlock()
	atomic.AddInt32(&c.count, 1)

	c.enqueueRefs(r)
	return nil
}

func (c *crawler) enqueueRefs(r result) {
	if r.depth >= c.opts.MaxDepth {
		return
	}

	next := r.depth + 1
	count := atomic.LoadInt32(&c.count)

	for _, ref := range r.rec.Req.CourseRefs() {
		if int(count) < c.opts.MaxCourses {
			c.enqueue(job{course: ref, depth: next})
		}
	}
}

// ordered arranges resolved records deterministically: roots first in
// argument order, then the remaining courses sorted by name.
func (c *crawler) ordered(roots []string) []Record {
	out := make([]Record, 0, len(c.records))
	emitted := make(map[string]bool, len(roots))
	for _, r := range roots {
		if emitted[r] {
			continue
		}
		emitted[r] = true
		if rec, ok := c.records[r]; ok {
			out = append(out, rec)
		}
	}
	for _, course := range slices.Sorted(maps.Keys(c.records)) {
		if !emitted[course] {
			out = append(out, c.records[course])
		}
	}
	return out
}
