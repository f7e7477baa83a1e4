package requirement

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by [Parse].
var (
	// ErrUnexpectedToken is returned when the expression contains a token
	// that is not valid at its position (e.g. a dangling operator).
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnbalancedParens is returned when an opening parenthesis is never
	// closed or a closing one never opened.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")

	// ErrMalformedRequisite is returned when a requisite atom does not carry
	// the expected flag block.
	ErrMalformedRequisite = errors.New("malformed requisite atom")
)

// Parse converts compact requisite expression text into a Requirement tree.
//
// The grammar is the one catalog scrapers emit: requisite atoms joined by
// '&' (conjunction) and '|' (disjunction) with parentheses for grouping.
// Each atom is a name followed by a flag block:
//
//	COM SCI 32{tttf C-} & (MATH 61{ttff} | MATH 180{ttff})
//
// The flag block holds four t/f bytes (course, enforced, prereq, coreq)
// followed by an optional minimum grade. Atoms flagged as non-courses
// become free-text notes. An enforced minimum grade becomes a grade gate
// wrapping the course; an unenforced one stays a plain annotation.
//
// An empty expression parses to None(). Parse never mutates its input.
func Parse(expr string) (Requirement, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return None(), nil
	}
	p := &parser{tokens: tokenize(expr)}
	req, err := p.expression()
	if err != nil {
		return Requirement{}, err
	}
	if p.peek().kind != tokenEnd {
		if p.peek().kind == tokenRParen {
			return Requirement{}, fmt.Errorf("%w: stray ')'", ErrUnbalancedParens)
		}
		return Requirement{}, fmt.Errorf("%w: %q", ErrUnexpectedToken, p.peek().value)
	}
	return req, nil
}

// =============================================================================
// Lexer
// =============================================================================

type tokenKind int

const (
	tokenRequisite tokenKind = iota
	tokenLParen
	tokenRParen
	tokenAnd
	tokenOr
	tokenEnd
)

type token struct {
	kind  tokenKind
	value string
}

type lexState int

const (
	lexStart lexState = iota
	lexName  // inside a requisite name, waiting for '{'
	lexFlags // inside a flag block, waiting for '}'
)

// tokenize splits expression text into tokens. Requisite names may contain
// any characters except the operators, so the lexer switches into name mode
// on the first non-operator byte and only leaves it after the closing '}'
// of the flag block.
func tokenize(expr string) []token {
	var tokens []token
	start := 0
	state := lexStart

	for pos, ch := range expr {
		switch state {
		case lexStart:
			switch ch {
			case '(':
				tokens = append(tokens, token{tokenLParen, "("})
				start = pos + 1
			case ')':
				tokens = append(tokens, token{tokenRParen, ")"})
				start = pos + 1
			case '&':
				tokens = append(tokens, token{tokenAnd, "&"})
				start = pos + 1
			case '|':
				tokens = append(tokens, token{tokenOr, "|"})
				start = pos + 1
			case ' ':
				start = pos + 1
			default:
				state = lexName
			}
		case lexName:
			if ch == '{' {
				state = lexFlags
			}
		case lexFlags:
			if ch == '}' {
				tokens = append(tokens, token{tokenRequisite, expr[start : pos+1]})
				start = pos + 1
				state = lexStart
			}
		}
	}
	if state == lexName {
		// Name without a flag block: keep it as a bare requisite so the
		// parser can report a useful error.
		tokens = append(tokens, token{tokenRequisite, expr[start:]})
	}
	return append(tokens, token{tokenEnd, "$"})
}

// =============================================================================
// Parser
// =============================================================================

// parser is a recursive-descent parser over the token stream:
//
//	expression := term ('|' term)*
//	term       := factor ('&' factor)*
//	factor     := requisite | '(' expression ')'
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) eat(kind tokenKind) (token, error) {
	t := p.tokens[p.pos]
	if t.kind != kind {
		return token{}, fmt.Errorf("%w: %q", ErrUnexpectedToken, t.value)
	}
	p.pos++
	return t, nil
}

func (p *parser) expression() (Requirement, error) {
	head, err := p.term()
	if err != nil {
		return Requirement{}, err
	}
	terms := []Requirement{head}
	for p.peek().kind == tokenOr {
		p.eat(tokenOr)
		next, err := p.term()
		if err != nil {
			return Requirement{}, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return head, nil
	}
	return Any(terms...), nil
}

func (p *parser) term() (Requirement, error) {
	head, err := p.factor()
	if err != nil {
		return Requirement{}, err
	}
	factors := []Requirement{head}
	for p.peek().kind == tokenAnd {
		p.eat(tokenAnd)
		next, err := p.factor()
		if err != nil {
			return Requirement{}, err
		}
		factors = append(factors, next)
	}
	if len(factors) == 1 {
		return head, nil
	}
	return All(factors...), nil
}

func (p *parser) factor() (Requirement, error) {
	switch p.peek().kind {
	case tokenRequisite:
		t, _ := p.eat(tokenRequisite)
		return parseRequisite(t.value)
	case tokenLParen:
		p.eat(tokenLParen)
		inner, err := p.expression()
		if err != nil {
			return Requirement{}, err
		}
		if _, err := p.eat(tokenRParen); err != nil {
			return Requirement{}, fmt.Errorf("%w: missing ')'", ErrUnbalancedParens)
		}
		return inner, nil
	default:
		return Requirement{}, fmt.Errorf("%w: %q", ErrUnexpectedToken, p.peek().value)
	}
}

// parseRequisite decodes a single "name{flags}" atom.
func parseRequisite(atom string) (Requirement, error) {
	name, flags, found := strings.Cut(atom, "{")
	if !found || !strings.HasSuffix(flags, "}") {
		return Requirement{}, fmt.Errorf("%w: %q", ErrMalformedRequisite, atom)
	}
	flags = strings.TrimSuffix(flags, "}")
	if len(flags) < 4 {
		return Requirement{}, fmt.Errorf("%w: flag block %q too short", ErrMalformedRequisite, atom)
	}
	name = strings.TrimSpace(name)

	isCourse := flags[0] == 't'
	isEnforced := flags[1] == 't'
	// flags[2] (prereq) and flags[3] (coreq) are carried by catalog data but
	// play no role in graph generation.
	minGrade := strings.TrimSpace(flags[4:])

	if !isCourse {
		return Note(name), nil
	}
	if isEnforced && minGrade != "" {
		return GradeGate(minGrade, Single(name)), nil
	}
	return SingleGraded(name, minGrade), nil
}
