// Package filter decides which courses appear in a generated graph.
//
// Filtering is a pure predicate over two allow-lists: department prefixes
// of the course name, and campus locations encoded in the course name's
// final character. An empty allow-list means "include everything" for that
// dimension; an unrecognized location value matches nothing (fail-closed)
// rather than producing an error.
package filter

import "strings"

// Location identifies a campus in the catalog's course numbering scheme.
type Location string

// Recognized campus locations.
const (
	LocationMain       Location = "main"
	LocationSatelliteA Location = "satellite-a"
	LocationSatelliteB Location = "satellite-b"
)

// locationSuffix maps a location to the final character its course numbers
// carry. Unrecognized locations map to the zero byte, which no course name
// ends with, so an unknown location filters out every course.
var locationSuffix = map[Location]byte{
	LocationMain:       '1',
	LocationSatelliteA: '3',
	LocationSatelliteB: '5',
}

// Options configures course filtering and graph generation.
type Options struct {
	// Departments lists course-name prefixes to include. Empty means all
	// departments pass.
	Departments []string `toml:"departments"`

	// Locations lists campus locations to include. Empty means all
	// locations pass.
	Locations []Location `toml:"locations"`

	// IncludeNotes materializes free-text prerequisite notes as graph nodes.
	IncludeNotes bool `toml:"include_notes"`

	// IncludeGrades materializes grade-threshold gates as graph nodes.
	// When false, grade gates are transparent: the wrapped requirement
	// attaches directly to the gate's parent.
	IncludeGrades bool `toml:"include_grades"`
}

// ShouldInclude reports whether a course passes both the department and the
// location allow-lists. It is a pure function of its inputs.
func (o Options) ShouldInclude(course string) bool {
	return o.matchesDepartment(course) && o.matchesLocation(course)
}

func (o Options) matchesDepartment(course string) bool {
	if len(o.Departments) == 0 {
		return true
	}
	for _, dept := range o.Departments {
		if strings.HasPrefix(course, dept) {
			return true
		}
	}
	return false
}

func (o Options) matchesLocation(course string) bool {
	if len(o.Locations) == 0 {
		return true
	}
	if course == "" {
		return false
	}
	last := course[len(course)-1]
	for _, loc := range o.Locations {
		if locationSuffix[loc] == last {
			return true
		}
	}
	return false
}
