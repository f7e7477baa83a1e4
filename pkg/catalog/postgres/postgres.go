// Package postgres implements a catalog Fetcher backed by a Postgres
// course database.
//
// The expected schema is the one catalog scrapers populate: a courses table
// keyed by course name with the compact requisite expression text alongside.
//
//	CREATE TABLE courses (
//	    name       text PRIMARY KEY,
//	    requisites text NOT NULL DEFAULT ''
//	);
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/requirement"
)

const (
	selectRequisites = `SELECT requisites FROM courses WHERE name = $1`
	selectCourses    = `SELECT name, requisites FROM courses WHERE name LIKE $1 || '%' ORDER BY name`
)

// Source fetches course records from a Postgres catalog database.
// The underlying pgx pool is safe for concurrent use, so one Source can
// serve the resolver's whole worker pool.
type Source struct {
	pool *pgxpool.Pool
}

// NewSource connects to the database described by dsn and verifies the
// connection with a ping.
func NewSource(ctx context.Context, dsn string) (*Source, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect catalog database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}
	return &Source{pool: pool}, nil
}

// Fetch returns the record for a course, or catalog.ErrCourseNotFound.
func (s *Source) Fetch(ctx context.Context, course string) (catalog.Record, error) {
	var expr string
	err := s.pool.QueryRow(ctx, selectRequisites, course).Scan(&expr)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Record{}, fmt.Errorf("%w: %q", catalog.ErrCourseNotFound, course)
	}
	if err != nil {
		return catalog.Record{}, fmt.Errorf("query course %q: %w", course, err)
	}

	req, err := requirement.Parse(expr)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("course %q: %w", course, err)
	}
	return catalog.Record{Course: course, Req: req}, nil
}

// Courses lists the records of every course whose name starts with prefix,
// e.g. all courses of one department. Rows with unparseable requisite text
// are returned with the empty requirement rather than failing the listing.
func (s *Source) Courses(ctx context.Context, prefix string) ([]catalog.Record, error) {
	rows, err := s.pool.Query(ctx, selectCourses, prefix)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var records []catalog.Record
	for rows.Next() {
		var name, expr string
		if err := rows.Scan(&name, &expr); err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		req, err := requirement.Parse(expr)
		if err != nil {
			req = requirement.None()
		}
		records = append(records, catalog.Record{Course: name, Req: req})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return records, nil
}

// Close releases the connection pool.
func (s *Source) Close() {
	s.pool.Close()
}

// Ensure Source implements catalog.Fetcher.
var _ catalog.Fetcher = (*Source)(nil)
