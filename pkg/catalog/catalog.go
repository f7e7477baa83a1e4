// Package catalog resolves course prerequisite data ahead of graph
// generation.
//
// The graph generator consumes a flat list of (course, requirement) pairs
// covering a root set and its full transitive closure. This package produces
// that list: a Fetcher retrieves one course's requirement from a catalog
// backend, and Resolve crawls the transitive prerequisite structure with a
// bounded concurrent worker pool.
//
// Three backends are provided:
//   - FileSource: a local JSON catalog file
//   - httpapi.Client: a catalog HTTP API (cached, retried, rate-limited)
//   - postgres.Source: a Postgres catalog database
package catalog

import (
	"context"
	"errors"

	"github.com/coursegraph/coursegraph/pkg/requirement"
)

// ErrCourseNotFound is returned by Fetchers when the catalog has no record
// for the requested course.
var ErrCourseNotFound = errors.New("course not found")

// Fetcher retrieves one course's catalog record.
type Fetcher interface {
	// Fetch returns the requirement expression of the named course.
	// It returns an error wrapping ErrCourseNotFound when the catalog
	// has no record for the course.
	Fetch(ctx context.Context, course string) (Record, error)
}

// Record is one resolved catalog entry: a course and its requirement.
type Record struct {
	Course string
	Req    requirement.Requirement
}
