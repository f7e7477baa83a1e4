package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/coursegraph/coursegraph/pkg/requirement"
)

// fakeFetcher serves records from a map and counts fetches per course.
type fakeFetcher struct {
	mu      sync.Mutex
	records map[string]Record
	fetches map[string]int
}

func newFakeFetcher(records map[string]Record) *fakeFetcher {
	return &fakeFetcher{records: records, fetches: make(map[string]int)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, course string) (Record, error) {
	f.mu.Lock()
	f.fetches[course]++
	f.mu.Unlock()

	rec, ok := f.records[course]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrCourseNotFound, course)
	}
	return rec, nil
}

func (f *fakeFetcher) count(course string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[course]
}

func rec(course string, req requirement.Requirement) Record {
	return Record{Course: course, Req: req}
}

func TestResolveTransitive(t *testing.T) {
	f := newFakeFetcher(map[string]Record{
		"C": rec("C", requirement.Single("B")),
		"B": rec("B", requirement.Single("A")),
		"A": rec("A", requirement.None()),
	})

	records, err := Resolve(context.Background(), f, []string{"C"}, Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	// Root first, then remaining courses sorted by name.
	want := []string{"C", "A", "B"}
	for i, w := range want {
		if records[i].Course != w {
			t.Errorf("records[%d] = %q, want %q", i, records[i].Course, w)
		}
	}
}

func TestResolveSharedPrerequisiteFetchedOnce(t *testing.T) {
	f := newFakeFetcher(map[string]Record{
		"X": rec("X", requirement.Single("A")),
		"Y": rec("Y", requirement.Single("A")),
		"A": rec("A", requirement.None()),
	})

	records, err := Resolve(context.Background(), f, []string{"X", "Y"}, Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if f.count("A") != 1 {
		t.Errorf("shared prerequisite fetched %d times, want 1", f.count("A"))
	}
}

func TestResolveDuplicateRoots(t *testing.T) {
	f := newFakeFetcher(map[string]Record{
		"A": rec("A", requirement.None()),
	})

	records, err := Resolve(context.Background(), f, []string{"A", "A"}, Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1 (duplicate roots collapse)", len(records))
	}
}

func TestResolveRootNotFound(t *testing.T) {
	f := newFakeFetcher(map[string]Record{})

	_, err := Resolve(context.Background(), f, []string{"MISSING"}, Options{})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("error = %v, want ErrCourseNotFound", err)
	}
}

// slowFetcher delays successful fetches so many worker sends and enqueues
// stay in flight at once.
type slowFetcher struct {
	inner *fakeFetcher
	delay time.Duration
}

func (f *slowFetcher) Fetch(ctx context.Context, course string) (Record, error) {
	r, err := f.inner.Fetch(ctx, course)
	if err != nil {
		return r, err
	}
	time.Sleep(f.delay)
	return r, nil
}

func TestResolveFailingRootDuringFanOut(t *testing.T) {
	// One root fails immediately while the other is still fanning out
	// hundreds of prerequisite enqueues. The error must surface cleanly
	// every time; the shutdown may not race the in-flight sends.
	records := map[string]Record{}
	deps := make([]requirement.Requirement, 0, 200)
	for i := 0; i < 200; i++ {
		name := fmt.Sprintf("DEP %d", i)
		records[name] = rec(name, requirement.None())
		deps = append(deps, requirement.Single(name))
	}
	records["WIDE"] = rec("WIDE", requirement.All(deps...))

	for i := 0; i < 25; i++ {
		f := &slowFetcher{inner: newFakeFetcher(records), delay: 100 * time.Microsecond}
		_, err := Resolve(context.Background(), f, []string{"WIDE", "MISSING"}, Options{})
		if !errors.Is(err, ErrCourseNotFound) {
			t.Fatalf("iteration %d: error = %v, want ErrCourseNotFound", i, err)
		}
	}
}

func TestResolveTransitiveMissSkipped(t *testing.T) {
	// A prerequisite absent from the catalog is logged and skipped; it
	// still appears in requirement trees but contributes no record.
	f := newFakeFetcher(map[string]Record{
		"ROOT": rec("ROOT", requirement.Single("GHOST")),
	})

	var logged []string
	opts := Options{Logger: func(msg string, args ...any) {
		logged = append(logged, fmt.Sprintf(msg, args...))
	}}

	records, err := Resolve(context.Background(), f, []string{"ROOT"}, opts)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(records) != 1 || records[0].Course != "ROOT" {
		t.Errorf("records = %v", records)
	}
	if len(logged) != 1 {
		t.Errorf("missing course should be logged once, got %v", logged)
	}
}

func TestResolveMaxDepth(t *testing.T) {
	f := newFakeFetcher(map[string]Record{
		"L0": rec("L0", requirement.Single("L1")),
		"L1": rec("L1", requirement.Single("L2")),
		"L2": rec("L2", requirement.Single("L3")),
		"L3": rec("L3", requirement.None()),
	})

	records, err := Resolve(context.Background(), f, []string{"L0"}, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	// Depth 0 is the root, depth 1 is L1; L2 and beyond are not expanded.
	if len(records) != 2 {
		t.Errorf("records = %d, want 2: %v", len(records), records)
	}
}

func TestResolveEmptyRoots(t *testing.T) {
	f := newFakeFetcher(nil)
	records, err := Resolve(context.Background(), f, nil, Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %v, want none", records)
	}
}

func TestResolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newFakeFetcher(map[string]Record{
		"A": rec("A", requirement.None()),
	})
	_, err := Resolve(ctx, f, []string{"A"}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestResolveWideFanOut(t *testing.T) {
	// A root with many prerequisites exercises the worker pool.
	records := map[string]Record{}
	var children []requirement.Requirement
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("DEP %02d", i)
		records[name] = rec(name, requirement.None())
		children = append(children, requirement.Single(name))
	}
	records["ROOT"] = rec("ROOT", requirement.All(children...))
	f := newFakeFetcher(records)

	got, err := Resolve(context.Background(), f, []string{"ROOT"}, Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(got) != 51 {
		t.Fatalf("records = %d, want 51", len(got))
	}
	// Deterministic ordering: root first, dependencies sorted.
	if got[0].Course != "ROOT" {
		t.Errorf("first record = %q, want ROOT", got[0].Course)
	}
	for i := 1; i < len(got)-1; i++ {
		if got[i].Course > got[i+1].Course {
			t.Fatalf("records not sorted at %d: %q > %q", i, got[i].Course, got[i+1].Course)
		}
	}
}
