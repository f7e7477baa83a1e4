package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/coursegraph/coursegraph/pkg/requirement"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSourceExpr(t *testing.T) {
	path := writeCatalog(t, `{
		"courses": {
			"COM SCI 180": {"expr": "COM SCI 32{tttf} & (MATH 61{ttff} | MATH 180{ttff})"},
			"MATH 61": {"expr": ""}
		}
	}`)

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource error: %v", err)
	}
	if src.Len() != 2 {
		t.Errorf("Len = %d, want 2", src.Len())
	}

	rec, err := src.Fetch(context.Background(), "COM SCI 180")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if rec.Req.Kind != requirement.KindAll {
		t.Errorf("requirement kind = %q, want all", rec.Req.Kind)
	}

	// Empty expression means no prerequisite.
	rec, err = src.Fetch(context.Background(), "MATH 61")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if rec.Req.Kind != requirement.KindNone {
		t.Errorf("requirement kind = %q, want none", rec.Req.Kind)
	}
}

func TestFileSourceStructuredReq(t *testing.T) {
	// A structured requirement wins over expression text.
	path := writeCatalog(t, `{
		"courses": {
			"PHYSICS 1A": {
				"expr": "IGNORED{ttff}",
				"req": {"kind": "single", "course": "MATH 31A"}
			}
		}
	}`)

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource error: %v", err)
	}
	rec, err := src.Fetch(context.Background(), "PHYSICS 1A")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if rec.Req.Kind != requirement.KindSingle || rec.Req.Course != "MATH 31A" {
		t.Errorf("req = %+v, want single MATH 31A", rec.Req)
	}
}

func TestFileSourceNotFound(t *testing.T) {
	path := writeCatalog(t, `{"courses": {}}`)
	src, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = src.Fetch(context.Background(), "NOPE")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("error = %v, want ErrCourseNotFound", err)
	}
}

func TestFileSourceBadExpr(t *testing.T) {
	path := writeCatalog(t, `{"courses": {"X": {"expr": "A{tt"}}}`)
	if _, err := NewFileSource(path); err == nil {
		t.Fatal("expected error for malformed expression")
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileSourceBadJSON(t *testing.T) {
	path := writeCatalog(t, `{"courses": [`)
	if _, err := NewFileSource(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
