// Package pkg provides the core libraries for coursegraph prerequisite visualization.
//
// # Overview
//
// Coursegraph turns the prerequisite structure of a course catalog into
// Graphviz dependency graphs. The pkg directory is organized into three
// main areas:
//
//  1. Domain logic: [requirement] (expression trees), [filter] (course
//     predicates), [dot] (graph generation and rendering)
//  2. Infrastructure: [cache] (file/Redis stores and key derivation),
//     [errors] (coded errors), [catalog] (courses and transitive resolution)
//  3. Orchestration: [pipeline] (resolve, generate, render with caching)
//
// # Architecture
//
// The typical data flow:
//
//	Catalog source (file / HTTP API / Postgres)
//	         |
//	catalog.Resolve - transitive prerequisite closure
//	         |
//	dot.Generate    - requirement trees to DOT statements
//	         |
//	dot.Render*     - DOT to SVG/PNG via Graphviz
//
// The pipeline package ties the stages together and caches each one.
package pkg
