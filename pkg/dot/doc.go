// Package dot turns course prerequisite requirements into Graphviz DOT graphs.
//
// The input is a flat list of (course, requirement) pairs, already expanded
// to the full transitive closure by a catalog source (see pkg/catalog). The
// output is a directed, non-strict graph description: a deduplicated list of
// node and edge statements wrapped in fixed presentation attributes, ready
// for a DOT renderer.
//
// # Generation
//
// Each course that passes the configured filter becomes a rectangular node;
// its requirement tree is walked recursively, attaching prerequisite nodes
// through edges that point from prerequisite to dependent. Boolean AND/OR
// combinators become small ellipse gate nodes, but only when they connect
// at least two meaningful children - trivial gates collapse into their
// parent. Grade gates are materialized or transparent depending on the
// options; credit gates are always materialized.
//
// Node identity is memoized per generation call: however many times a course
// is referenced, exactly one node declaration is produced and every edge
// reuses its identifier. A monotonically increasing counter makes declaration
// identifiers unique even when two distinct names sanitize to the same
// identifier text.
//
// # Example
//
//	g := dot.Generate(filter.Options{}, []dot.Entry{
//	    {Course: "MATH 33A", Req: requirement.Single("MATH 31B")},
//	})
//	fmt.Print(g.String())
package dot
