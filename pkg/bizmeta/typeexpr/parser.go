package typeexpr

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	prefixObject = "json<object:"
	prefixArray  = "json<array:"
	prefixRef    = "ref:"
)

// SyntaxError reports why a type expression does not match the grammar.
type SyntaxError struct {
	Input   string // The rejected expression
	Offset  int    // Byte offset of the problem
	Message string // What was expected or found
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid type expression %q at offset %d: %s", e.Input, e.Offset, e.Message)
}

// Parse parses a type expression.
//
//	type        := union | atom
//	union       := atom ('|' atom)+
//	atom        := scalar | entity_ref | object_type | array_type | typeref
//	object_type := "json<object:" dotted_path ">"
//	array_type  := "json<array:" type ">"
//	typeref     := "ref:" dotted_path
//
// Array elements may not contain another array or a typeref. Union
// members must be distinct and whitespace is rejected everywhere. Parse
// does not check that referenced entities or codes exist.
func Parse(text string) (Expr, error) {
	p := &parser{src: text}
	if text == "" {
		return nil, p.errorf("empty type expression")
	}
	for i, r := range text {
		if unicode.IsSpace(r) {
			p.pos = i
			return nil, p.errorf("whitespace is not allowed")
		}
	}

	expr, err := p.parseType(false)
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %s", p.describe())
	}
	return expr, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level fixtures.
func MustParse(text string) Expr {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	src string
	pos int
}

func (p *parser) parseType(inArray bool) (Expr, error) {
	first, err := p.parseAtom(inArray)
	if err != nil {
		return nil, err
	}
	if p.peek() != '|' {
		return first, nil
	}

	members := []Expr{first}
	seen := map[string]bool{first.String(): true}
	for p.peek() == '|' {
		p.pos++
		start := p.pos
		atom, err := p.parseAtom(inArray)
		if err != nil {
			return nil, err
		}
		key := atom.String()
		if seen[key] {
			p.pos = start
			return nil, p.errorf("duplicate union member %q", key)
		}
		seen[key] = true
		members = append(members, atom)
	}
	return Union{Members: members}, nil
}

func (p *parser) parseAtom(inArray bool) (Expr, error) {
	switch {
	case p.hasPrefix(prefixObject):
		p.pos += len(prefixObject)
		ns, err := p.parseDottedPath("namespace")
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return Object{Namespace: ns}, nil

	case p.hasPrefix(prefixArray):
		if inArray {
			return nil, p.errorf("array element may not be another array")
		}
		p.pos += len(prefixArray)
		elem, err := p.parseType(true)
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return Array{Elem: elem}, nil

	case p.hasPrefix(prefixRef):
		if inArray {
			return nil, p.errorf("array element may not contain a typeref")
		}
		p.pos += len(prefixRef)
		code, err := p.parseDottedPath("code")
		if err != nil {
			return nil, err
		}
		return TypeRef{Code: code}, nil
	}

	name := p.scanIdent()
	if name == "" {
		return nil, p.errorf("expected type, found %s", p.describe())
	}
	if p.peek() == '.' {
		return nil, p.errorf("entity reference %q must be a single identifier", name)
	}
	if IsScalarName(name) {
		return Scalar{Name: ScalarKind(name)}, nil
	}
	return EntityRef{Name: name}, nil
}

// parseDottedPath reads ident ('.' ident)*.
func (p *parser) parseDottedPath(what string) (string, error) {
	start := p.pos
	for {
		if p.scanIdent() == "" {
			return "", p.errorf("expected %s segment, found %s", what, p.describe())
		}
		if p.peek() != '.' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos], nil
}

// scanIdent reads [a-z][a-z0-9_]* and returns it, or "" without moving.
func (p *parser) scanIdent() string {
	start := p.pos
	if p.eof() || !isLower(p.src[p.pos]) {
		return ""
	}
	p.pos++
	for !p.eof() {
		c := p.src[p.pos]
		if !isLower(c) && !isDigit(c) && c != '_' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q, found %s", c, p.describe())
	}
	p.pos++
	return nil
}

func (p *parser) hasPrefix(prefix string) bool {
	return len(p.src)-p.pos >= len(prefix) && p.src[p.pos:p.pos+len(prefix)] == prefix
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) describe() string {
	if p.eof() {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return fmt.Sprintf("%q", r)
}

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Input:   p.src,
		Offset:  p.pos,
		Message: fmt.Sprintf(format, args...),
	}
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
