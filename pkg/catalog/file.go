package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/coursegraph/coursegraph/pkg/requirement"
)

// FileSource serves catalog records from a JSON file loaded into memory.
// The file maps course names to either compact requisite expression text or
// a structured requirement:
//
//	{
//	  "courses": {
//	    "COM SCI 180": {"expr": "COM SCI 32{tttf}&(MATH 61{ttff}|MATH 180{ttff})"},
//	    "MATH 61":     {"req": {"kind": "none"}}
//	  }
//	}
//
// Expressions are parsed once at load time, so Fetch never fails with a
// parse error.
type FileSource struct {
	records map[string]Record
}

type fileCatalog struct {
	Courses map[string]fileCourse `json:"courses"`
}

type fileCourse struct {
	Expr string                   `json:"expr,omitempty"`
	Req  *requirement.Requirement `json:"req,omitempty"`
}

// NewFileSource loads a JSON catalog file. When a course carries both a
// structured requirement and expression text, the structured form wins.
// Courses with neither get the empty requirement.
func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var raw fileCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	records := make(map[string]Record, len(raw.Courses))
	for course, entry := range raw.Courses {
		rec := Record{Course: course, Req: requirement.None()}
		switch {
		case entry.Req != nil:
			rec.Req = *entry.Req
		case entry.Expr != "":
			req, err := requirement.Parse(entry.Expr)
			if err != nil {
				return nil, fmt.Errorf("catalog %s: course %q: %w", path, course, err)
			}
			rec.Req = req
		}
		records[course] = rec
	}
	return &FileSource{records: records}, nil
}

// Fetch returns the record for a course, or ErrCourseNotFound.
func (s *FileSource) Fetch(ctx context.Context, course string) (Record, error) {
	rec, ok := s.records[course]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrCourseNotFound, course)
	}
	return rec, nil
}

// Len returns the number of courses in the catalog.
func (s *FileSource) Len() int { return len(s.records) }

// Ensure FileSource implements Fetcher.
var _ Fetcher = (*FileSource)(nil)
