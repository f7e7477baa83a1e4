package filter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestShouldIncludeEmptyOptions(t *testing.T) {
	var opts Options
	for _, course := range []string{"COM SCI 31", "MATH 61", "X"} {
		if !opts.ShouldInclude(course) {
			t.Errorf("empty options should include %q", course)
		}
	}
}

func TestDepartmentPrefix(t *testing.T) {
	opts := Options{Departments: []string{"COM SCI", "MATH"}}

	cases := []struct {
		course string
		want   bool
	}{
		{"COM SCI 31", true},
		{"MATH 61", true},
		{"MATH", true}, // bare prefix still matches
		{"PHYSICS 1A", false},
		{"COM 10", false}, // prefix match is on the full department string
	}
	for _, tc := range cases {
		if got := opts.ShouldInclude(tc.course); got != tc.want {
			t.Errorf("ShouldInclude(%q) = %v, want %v", tc.course, got, tc.want)
		}
	}
}

func TestLocationSuffix(t *testing.T) {
	opts := Options{Locations: []Location{LocationMain}}

	if !opts.ShouldInclude("COM SCI 31") {
		t.Error("course ending in main-campus digit should pass")
	}
	if opts.ShouldInclude("COM SCI 33") {
		t.Error("course ending in satellite digit should not pass")
	}

	opts.Locations = []Location{LocationMain, LocationSatelliteA}
	if !opts.ShouldInclude("COM SCI 33") {
		t.Error("course should pass with satellite-a allowed")
	}
}

func TestUnknownLocationFailsClosed(t *testing.T) {
	// An unrecognized location must filter out everything rather than
	// silently matching.
	opts := Options{Locations: []Location{"moon-campus"}}
	for _, course := range []string{"COM SCI 31", "MATH 63", "PHYSICS 15"} {
		if opts.ShouldInclude(course) {
			t.Errorf("unknown location should exclude %q", course)
		}
	}
}

func TestLocationEmptyCourse(t *testing.T) {
	opts := Options{Locations: []Location{LocationMain}}
	if opts.ShouldInclude("") {
		t.Error("empty course name should not match any location")
	}
}

func TestBothDimensionsMustPass(t *testing.T) {
	opts := Options{
		Departments: []string{"COM SCI"},
		Locations:   []Location{LocationMain},
	}
	if !opts.ShouldInclude("COM SCI 31") {
		t.Error("course matching both dimensions should pass")
	}
	if opts.ShouldInclude("MATH 61") {
		t.Error("wrong department should fail even with matching location")
	}
	if opts.ShouldInclude("COM SCI 33") {
		t.Error("wrong location should fail even with matching department")
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.toml")
	content := `
departments = ["COM SCI", "MATH"]
locations = ["main"]
include_notes = true
include_grades = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions error: %v", err)
	}
	if len(opts.Departments) != 2 || opts.Departments[0] != "COM SCI" {
		t.Errorf("departments = %v", opts.Departments)
	}
	if len(opts.Locations) != 1 || opts.Locations[0] != LocationMain {
		t.Errorf("locations = %v", opts.Locations)
	}
	if !opts.IncludeNotes || !opts.IncludeGrades {
		t.Errorf("flags = %+v", opts)
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
