package typeexpr

import "strings"

// Kind identifies the variant of an Expr.
type Kind int

const (
	KindScalar Kind = iota
	KindEntityRef
	KindUnion
	KindObject
	KindArray
	KindTypeRef
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEntityRef:
		return "entity_ref"
	case KindUnion:
		return "union"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindTypeRef:
		return "typeref"
	default:
		return "unknown"
	}
}

// Expr is a parsed type expression. The concrete types are Scalar,
// EntityRef, Union, Object, Array and TypeRef; values are immutable.
type Expr interface {
	// Kind returns the variant of the node.
	Kind() Kind
	// String returns the canonical textual form; Parse(e.String()) yields e.
	String() string

	isExpr()
}

// ScalarKind names a built-in scalar.
type ScalarKind string

const (
	ScalarString   ScalarKind = "string"
	ScalarInt      ScalarKind = "int"
	ScalarDecimal  ScalarKind = "decimal"
	ScalarBoolean  ScalarKind = "boolean"
	ScalarDate     ScalarKind = "date"
	ScalarDatetime ScalarKind = "datetime"
)

// ScalarKinds lists the built-in scalars.
var ScalarKinds = []ScalarKind{
	ScalarString, ScalarInt, ScalarDecimal, ScalarBoolean, ScalarDate, ScalarDatetime,
}

// IsScalarName reports whether name is a built-in scalar keyword.
func IsScalarName(name string) bool {
	for _, k := range ScalarKinds {
		if string(k) == name {
			return true
		}
	}
	return false
}

// Scalar is one of the built-in scalar types.
type Scalar struct {
	Name ScalarKind
}

func (Scalar) Kind() Kind       { return KindScalar }
func (s Scalar) String() string { return string(s.Name) }
func (Scalar) isExpr()          {}

// EntityRef names an entity concept, e.g. "company".
type EntityRef struct {
	Name string
}

func (EntityRef) Kind() Kind       { return KindEntityRef }
func (e EntityRef) String() string { return e.Name }
func (EntityRef) isExpr()          {}

// Union is an ordered list of at least two distinct non-union members.
type Union struct {
	Members []Expr
}

func (Union) Kind() Kind { return KindUnion }

func (u Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, "|")
}

func (Union) isExpr() {}

// Object is json<object:NAMESPACE>.
type Object struct {
	Namespace string
}

func (Object) Kind() Kind       { return KindObject }
func (o Object) String() string { return "json<object:" + o.Namespace + ">" }
func (Object) isExpr()          {}

// Array is json<array:ELEM>.
type Array struct {
	Elem Expr
}

func (Array) Kind() Kind       { return KindArray }
func (a Array) String() string { return "json<array:" + a.Elem.String() + ">" }
func (Array) isExpr()          {}

// TypeRef is ref:<code>, a reference to another record's value_type.
type TypeRef struct {
	Code string
}

func (TypeRef) Kind() Kind       { return KindTypeRef }
func (r TypeRef) String() string { return "ref:" + r.Code }
func (TypeRef) isExpr()          {}

// Equal reports whether a and b are the same tree.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Union:
		bv := b.(Union)
		if len(av.Members) != len(bv.Members) {
			return false
		}
		for i := range av.Members {
			if !Equal(av.Members[i], bv.Members[i]) {
				return false
			}
		}
		return true
	case Array:
		return Equal(av.Elem, b.(Array).Elem)
	default:
		return a == b
	}
}

// Walk calls fn for e and every node below it, depth first, in order.
// Walking stops descending into a node when fn returns false.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch v := e.(type) {
	case Union:
		for _, m := range v.Members {
			Walk(m, fn)
		}
	case Array:
		Walk(v.Elem, fn)
	}
}

// Refs returns the codes of every TypeRef in e, in order of appearance.
func Refs(e Expr) []string {
	var codes []string
	Walk(e, func(n Expr) bool {
		if r, ok := n.(TypeRef); ok {
			codes = append(codes, r.Code)
		}
		return true
	})
	return codes
}

// ContainsRef reports whether e has at least one TypeRef.
func ContainsRef(e Expr) bool {
	found := false
	Walk(e, func(n Expr) bool {
		if n.Kind() == KindTypeRef {
			found = true
		}
		return !found
	})
	return found
}

// Members returns the members of a union, or e itself as a single member.
func Members(e Expr) []Expr {
	if u, ok := e.(Union); ok {
		return u.Members
	}
	return []Expr{e}
}
