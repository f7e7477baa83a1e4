package requirement

import (
	"errors"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	for _, expr := range []string{"", "   "} {
		req, err := Parse(expr)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", expr, err)
		}
		if req.Kind != KindNone {
			t.Errorf("Parse(%q) kind = %q, want none", expr, req.Kind)
		}
	}
}

func TestParseSingleCourse(t *testing.T) {
	req, err := Parse("COM SCI 32{ttff}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if req.Kind != KindSingle {
		t.Fatalf("kind = %q, want single", req.Kind)
	}
	if req.Course != "COM SCI 32" {
		t.Errorf("course = %q, want COM SCI 32", req.Course)
	}
	if req.MinGrade != "" {
		t.Errorf("minGrade = %q, want empty", req.MinGrade)
	}
}

func TestParseUnenforcedGrade(t *testing.T) {
	// Grade present but not enforced: stays an annotation on the course.
	req, err := Parse("MATH 31A{tfff C-}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if req.Kind != KindSingle {
		t.Fatalf("kind = %q, want single", req.Kind)
	}
	if req.MinGrade != "C-" {
		t.Errorf("minGrade = %q, want C-", req.MinGrade)
	}
}

func TestParseEnforcedGrade(t *testing.T) {
	// Enforced grade wraps the course in a grade gate.
	req, err := Parse("MATH 31A{ttff C-}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if req.Kind != KindGrade {
		t.Fatalf("kind = %q, want grade", req.Kind)
	}
	if req.Grade != "C-" {
		t.Errorf("grade = %q, want C-", req.Grade)
	}
	if req.Inner == nil || req.Inner.Course != "MATH 31A" {
		t.Errorf("inner = %+v, want single MATH 31A", req.Inner)
	}
}

func TestParseNonCourseAtom(t *testing.T) {
	req, err := Parse("High school chemistry{ffff}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if req.Kind != KindFreeText {
		t.Fatalf("kind = %q, want note", req.Kind)
	}
	if req.Text != "High school chemistry" {
		t.Errorf("text = %q", req.Text)
	}
}

func TestParseConjunction(t *testing.T) {
	req, err := Parse("COM SCI 32{ttff} & MATH 61{ttff}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if req.Kind != KindAll {
		t.Fatalf("kind = %q, want all", req.Kind)
	}
	if len(req.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(req.Children))
	}
	if req.Children[0].Course != "COM SCI 32" || req.Children[1].Course != "MATH 61" {
		t.Errorf("children = %+v", req.Children)
	}
}

func TestParsePrecedence(t *testing.T) {
	// '&' binds tighter than '|': a|b&c parses as a|(b&c).
	req, err := Parse("A{ttff} | B{ttff} & C{ttff}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if req.Kind != KindAny {
		t.Fatalf("kind = %q, want any", req.Kind)
	}
	if len(req.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(req.Children))
	}
	if req.Children[1].Kind != KindAll {
		t.Errorf("second child kind = %q, want all", req.Children[1].Kind)
	}
}

func TestParseGrouping(t *testing.T) {
	req, err := Parse("COM SCI 32{ttff} & (MATH 61{ttff} | MATH 180{ttff})")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if req.Kind != KindAll {
		t.Fatalf("kind = %q, want all", req.Kind)
	}
	if req.Children[1].Kind != KindAny {
		t.Errorf("grouped child kind = %q, want any", req.Children[1].Kind)
	}
}

func TestParseNestedGroups(t *testing.T) {
	req, err := Parse("((A{ttff}))")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if req.Kind != KindSingle || req.Course != "A" {
		t.Errorf("req = %+v, want single A", req)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		expr string
		want error
	}{
		{"A{ttff} &", ErrUnexpectedToken},
		{"| A{ttff}", ErrUnexpectedToken},
		{"(A{ttff}", ErrUnbalancedParens},
		{"A{ttff})", ErrUnbalancedParens},
		{"A", ErrMalformedRequisite},
		{"A{tt}", ErrMalformedRequisite},
	}
	for _, tc := range cases {
		_, err := Parse(tc.expr)
		if !errors.Is(err, tc.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tc.expr, err, tc.want)
		}
	}
}

func TestCourseRefs(t *testing.T) {
	req, err := Parse("A{ttff} & (B{ttff C-} | note{ffff}) & A{ttff}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	refs := req.CourseRefs()
	// Left-to-right, no deduplication, notes excluded.
	want := []string{"A", "B", "A"}
	if len(refs) != len(want) {
		t.Fatalf("refs = %v, want %v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("refs[%d] = %q, want %q", i, refs[i], want[i])
		}
	}
}

func TestCourseRefsGates(t *testing.T) {
	req := CreditGate("12", GradeGate("B", Single("CHEM 20A")))
	refs := req.CourseRefs()
	if len(refs) != 1 || refs[0] != "CHEM 20A" {
		t.Errorf("refs = %v, want [CHEM 20A]", refs)
	}
}

func TestMeaningful(t *testing.T) {
	cases := []struct {
		req  Requirement
		want bool
	}{
		{None(), false},
		{Note("see advisor"), false},
		{Single("MATH 1"), true},
		{All(Single("A"), Single("B")), true},
		{GradeGate("C", Single("A")), true},
		{CreditGate("8", None()), true},
	}
	for _, tc := range cases {
		if got := tc.req.Meaningful(); got != tc.want {
			t.Errorf("Meaningful(%q) = %v, want %v", tc.req.Kind, got, tc.want)
		}
	}
}
