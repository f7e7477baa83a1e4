package dot

import (
	"strings"

	"github.com/coursegraph/coursegraph/pkg/filter"
	"github.com/coursegraph/coursegraph/pkg/requirement"
)

// Gate labels for the boolean combinators.
const (
	labelAnd = "and"
	labelOr  = "or"
)

// freeTextExclude drops pre-university notes ("High school chemistry with a
// grade of B or better") that are not actionable prerequisites.
const freeTextExclude = "High school"

// Entry pairs a course with its requirement expression. Catalog sources
// produce entries for the root courses and their full transitive closure.
type Entry struct {
	Course string
	Req    requirement.Requirement
}

// Generate expands the given (course, requirement) pairs into a renderable
// graph. Courses that fail the filter contribute nothing; every other
// course becomes a node plus whatever its requirement walk emits. The
// concatenated statements are deduplicated (first occurrence wins) and
// wrapped with the fixed presentation attributes.
//
// Generate is total: it always produces a graph, never an error. Generator
// state lives exactly as long as the call and is never shared, so Generate
// is safe to call from multiple goroutines with distinct arguments.
func Generate(opts filter.Options, entries []Entry) *Graph {
	g := newGenerator()
	var stmts []Statement
	for _, e := range entries {
		if !opts.ShouldInclude(e.Course) {
			continue
		}
		n := g.node(e.Course)
		stmts = append(stmts, nodeStmt(n))
		stmts = append(stmts, g.walk(opts, n.ID, e.Req)...)
	}
	return Assemble(Dedupe(stmts))
}

// walk emits the statements for one requirement attached to parentID.
// Statement order within one call is node-then-edge, children left to right.
func (g *generator) walk(opts filter.Options, parentID string, r requirement.Requirement) []Statement {
	switch r.Kind {
	case requirement.KindSingle:
		if !opts.ShouldInclude(r.Course) {
			return nil
		}
		n := g.node(r.Course)
		return []Statement{nodeStmt(n), edgeStmt(newEdge(n.ID, parentID))}

	case requirement.KindAll:
		return g.walkBoolean(opts, parentID, labelAnd, r.Children)

	case requirement.KindAny:
		return g.walkBoolean(opts, parentID, labelOr, r.Children)

	case requirement.KindGrade:
		if r.Inner == nil {
			return nil
		}
		if !opts.IncludeGrades {
			// Transparent: the gate disappears but the wrapped requirement
			// attaches to the original parent.
			return g.walk(opts, parentID, *r.Inner)
		}
		n := g.node(r.Grade)
		stmts := []Statement{nodeStmt(n), edgeStmt(newEdge(n.ID, parentID))}
		return append(stmts, g.walk(opts, n.ID, *r.Inner)...)

	case requirement.KindFreeText:
		if !opts.IncludeNotes || r.Text == "" || strings.Contains(r.Text, freeTextExclude) {
			return nil
		}
		n := g.node(r.Text)
		return []Statement{nodeStmt(n), edgeStmt(newEdge(n.ID, parentID))}

	case requirement.KindCredits:
		// Credit gates are never elided.
		n := g.node(r.Units)
		stmts := []Statement{nodeStmt(n), edgeStmt(newEdge(n.ID, parentID))}
		if r.Inner != nil {
			stmts = append(stmts, g.walk(opts, n.ID, *r.Inner)...)
		}
		return stmts
	}
	// KindNone and unknown kinds contribute nothing.
	return nil
}

// walkBoolean handles AND/OR combinators. A gate is only worth
// materializing when note inclusion is on or at least two children are
// structurally meaningful; otherwise the children attach directly to the
// original parent, flattening the trivial gate away.
//
// When a gate is materialized the children are walked first, and the gate
// is discarded if they produced at most one statement. The order matters:
// children that the filter removed count only through their absence from
// the walked result, so pruning must happen after the recursion.
func (g *generator) walkBoolean(opts filter.Options, parentID, label string, children []requirement.Requirement) []Statement {
	meaningful := 0
	for _, c := range children {
		if c.Meaningful() {
			meaningful++
		}
	}

	if !opts.IncludeNotes && meaningful < 2 {
		var stmts []Statement
		for _, c := range children {
			stmts = append(stmts, g.walk(opts, parentID, c)...)
		}
		return stmts
	}

	gate := g.gateNode(label)
	var childStmts []Statement
	for _, c := range children {
		childStmts = append(childStmts, g.walk(opts, gate.ID, c)...)
	}
	if len(childStmts) <= 1 {
		// A gate with at most one surviving child statement is visual
		// noise; drop it and everything under it.
		return nil
	}
	stmts := []Statement{nodeStmt(gate), edgeStmt(newEdge(gate.ID, parentID))}
	return append(stmts, childStmts...)
}
