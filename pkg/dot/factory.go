package dot

import (
	"strconv"
	"strings"
)

// generator holds the per-invocation state of one Generate call: the
// counter that makes node identifiers unique and the memo table that
// collapses repeated references to the same semantic name into one node.
// A generator is created fresh for every call and never shared.
type generator struct {
	counter int
	memo    map[string]*Node
}

func newGenerator() *generator {
	return &generator{memo: make(map[string]*Node)}
}

// node returns the node for a semantic name, creating it on first use.
// Repeat calls with the same name return the identical node; this is the
// sole deduplication mechanism for shared prerequisite subtrees.
func (g *generator) node(name string) *Node {
	if n, ok := g.memo[name]; ok {
		return n
	}
	n := &Node{
		ID:    sanitizeID(name) + "_counter_" + strconv.Itoa(g.counter),
		Label: name,
		Shape: ShapeBox,
	}
	g.memo[name] = n
	g.counter++
	return n
}

// gateNode creates a fresh boolean gate node. Gate nodes are never
// memoized: each AND/OR site in a requirement tree is structurally unique
// to its position, so reusing a gate across positions would merge
// unrelated combinators.
func (g *generator) gateNode(label string) *Node {
	n := &Node{
		ID:    sanitizeID(label) + "_counter_" + strconv.Itoa(g.counter),
		Label: label,
		Shape: ShapeGate,
	}
	g.counter++
	return n
}

// sanitizeID maps a semantic name onto the characters safe for a DOT
// declaration identifier. Distinct names may collide after sanitization;
// the counter suffix keeps the final identifiers unique regardless.
func sanitizeID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
