// Package requirement models course prerequisite expressions.
//
// A Requirement is a small expression tree describing how the prerequisites
// of a course combine: individual courses, boolean conjunction/disjunction,
// grade-threshold gates, minimum-credit gates, and unstructured free-text
// notes that could not be parsed into anything better.
//
// Requirements arrive from catalog sources either as structured JSON
// (see MarshalJSON/UnmarshalJSON) or as compact requisite expression text
// parsed by [Parse].
//
// Requirement values are immutable inputs: nothing in this module mutates a
// tree after it has been built.
package requirement

// Kind identifies the variant of a Requirement node.
type Kind string

// Requirement variants.
const (
	// KindNone means the course has no prerequisite.
	KindNone Kind = "none"
	// KindSingle is a single prerequisite course, optionally annotated
	// with a minimum grade.
	KindSingle Kind = "single"
	// KindAll is a conjunction: every child requirement must be met.
	KindAll Kind = "all"
	// KindAny is a disjunction: at least one child requirement must be met.
	KindAny Kind = "any"
	// KindGrade wraps an inner requirement with a grade threshold.
	KindGrade Kind = "grade"
	// KindFreeText is an unstructured prerequisite note.
	KindFreeText Kind = "note"
	// KindCredits wraps an inner requirement with a minimum number of
	// earned credit units.
	KindCredits Kind = "credits"
)

// Requirement is one node of a prerequisite expression tree.
// Exactly the fields relevant to its Kind are populated; use the
// constructors rather than building values by hand.
//
// The zero value has Kind "" and is not a valid requirement - use None()
// for the absence of a prerequisite.
type Requirement struct {
	Kind Kind

	// Course is the prerequisite course name (KindSingle).
	Course string
	// MinGrade is an optional minimum-grade annotation on a single course
	// (KindSingle). It is carried for catalog fidelity but the graph
	// generator does not act on it.
	MinGrade string

	// Children holds the operands of a boolean combinator (KindAll, KindAny).
	Children []Requirement

	// Grade is the threshold description of a grade gate (KindGrade),
	// e.g. "C- or better".
	Grade string
	// Units is the credit amount of a credit gate (KindCredits), e.g. "12".
	Units string
	// Inner is the requirement wrapped by a grade or credit gate.
	Inner *Requirement

	// Text is the raw note of an unstructured requirement (KindFreeText).
	Text string
}

// None returns the empty requirement: the course has no prerequisite.
func None() Requirement { return Requirement{Kind: KindNone} }

// Single returns a requirement on one course.
func Single(course string) Requirement {
	return Requirement{Kind: KindSingle, Course: course}
}

// SingleGraded returns a requirement on one course annotated with a
// minimum grade.
func SingleGraded(course, minGrade string) Requirement {
	return Requirement{Kind: KindSingle, Course: course, MinGrade: minGrade}
}

// All returns the conjunction of the given requirements.
func All(children ...Requirement) Requirement {
	return Requirement{Kind: KindAll, Children: children}
}

// Any returns the disjunction of the given requirements.
func Any(children ...Requirement) Requirement {
	return Requirement{Kind: KindAny, Children: children}
}

// GradeGate wraps inner with a grade threshold described by grade.
func GradeGate(grade string, inner Requirement) Requirement {
	return Requirement{Kind: KindGrade, Grade: grade, Inner: &inner}
}

// Note returns an unstructured free-text requirement.
func Note(text string) Requirement {
	return Requirement{Kind: KindFreeText, Text: text}
}

// CreditGate wraps inner with a minimum-credit-units threshold.
func CreditGate(units string, inner Requirement) Requirement {
	return Requirement{Kind: KindCredits, Units: units, Inner: &inner}
}

// Meaningful reports whether the requirement is structurally meaningful:
// a real course, combinator, or gate rather than the absence of a
// prerequisite or a free-text note. The graph generator uses this to decide
// whether a boolean gate is worth materializing.
func (r Requirement) Meaningful() bool {
	return r.Kind != KindNone && r.Kind != KindFreeText
}

// CourseRefs returns every course name referenced anywhere in the tree,
// in left-to-right order, without deduplication. The transitive resolver
// uses this to discover which courses still need catalog lookups.
func (r Requirement) CourseRefs() []string {
	var refs []string
	r.appendRefs(&refs)
	return refs
}

func (r Requirement) appendRefs(refs *[]string) {
	switch r.Kind {
	case KindSingle:
		*refs = append(*refs, r.Course)
	case KindAll, KindAny:
		for _, c := range r.Children {
			c.appendRefs(refs)
		}
	case KindGrade, KindCredits:
		if r.Inner != nil {
			r.Inner.appendRefs(refs)
		}
	}
}
