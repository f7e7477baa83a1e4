package dot

import (
	"strings"
	"testing"
)

func TestNodeMemoized(t *testing.T) {
	g := newGenerator()

	n1 := g.node("COM SCI 31")
	n2 := g.node("COM SCI 31")
	if n1 != n2 {
		t.Error("repeat calls with the same name should return the identical node")
	}

	n3 := g.node("MATH 61")
	if n3 == n1 {
		t.Error("different names should produce different nodes")
	}
}

func TestNodeIdentifierScheme(t *testing.T) {
	g := newGenerator()

	n1 := g.node("COM SCI 31")
	if n1.ID != "COM_SCI_31_counter_0" {
		t.Errorf("ID = %q, want COM_SCI_31_counter_0", n1.ID)
	}
	if n1.Label != "COM SCI 31" {
		t.Errorf("label = %q, want unsanitized name", n1.Label)
	}

	// Counter advances per creation, not per call.
	g.node("COM SCI 31")
	n2 := g.node("MATH 61")
	if n2.ID != "MATH_61_counter_1" {
		t.Errorf("ID = %q, want MATH_61_counter_1", n2.ID)
	}
}

func TestCounterKeepsCollidingNamesUnique(t *testing.T) {
	// Distinct names that sanitize identically still get distinct IDs.
	g := newGenerator()
	n1 := g.node("A B")
	n2 := g.node("A-B")
	if n1.ID == n2.ID {
		t.Errorf("colliding sanitized names must stay unique: %q", n1.ID)
	}
}

func TestGateNodeNeverMemoized(t *testing.T) {
	g := newGenerator()
	n1 := g.gateNode("and")
	n2 := g.gateNode("and")
	if n1 == n2 || n1.ID == n2.ID {
		t.Error("gate nodes must be fresh per call")
	}
	if n1.Shape != ShapeGate || n2.Shape != ShapeGate {
		t.Error("gate nodes use the ellipse shape")
	}
}

func TestGateAndCourseShareCounter(t *testing.T) {
	g := newGenerator()
	g.node("A")     // counter 0
	gate := g.gateNode("and") // counter 1
	n := g.node("B") // counter 2
	if gate.ID != "and_counter_1" {
		t.Errorf("gate ID = %q, want and_counter_1", gate.ID)
	}
	if n.ID != "B_counter_2" {
		t.Errorf("node ID = %q, want B_counter_2", n.ID)
	}
}

func TestSanitizeID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"COM SCI 31", "COM_SCI_31"},
		{"C- or better", "C__or_better"},
		{"abc123", "abc123"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := sanitizeID(tc.in); got != tc.want {
			t.Errorf("sanitizeID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewEdge(t *testing.T) {
	e := newEdge("a_counter_0", "b_counter_1")
	if e.From != "a_counter_0" || e.To != "b_counter_1" {
		t.Errorf("edge endpoints = %s -> %s", e.From, e.To)
	}
	if !strings.Contains(e.ID, "a_counter_0") || !strings.Contains(e.ID, "b_counter_1") {
		t.Errorf("edge ID should derive from endpoints: %q", e.ID)
	}
}
