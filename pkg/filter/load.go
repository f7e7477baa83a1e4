package filter

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadOptions reads filter options from a TOML file:
//
//	departments = ["COM SCI", "MATH"]
//	locations = ["main"]
//	include_notes = false
//	include_grades = true
//
// Unknown keys are ignored; unknown location values are kept verbatim and
// fail closed at match time.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options %s: %w", path, err)
	}
	var opts Options
	if err := toml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options %s: %w", path, err)
	}
	return opts, nil
}
