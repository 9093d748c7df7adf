// Package typeexpr parses the value_type grammar of dictionary features.
//
// A type expression is one of:
//
//	string | int | decimal | boolean | date | datetime   scalars
//	company                                           entity reference
//	int|string                                        union (>= 2 distinct atoms)
//	json<object:company.base>                         object over a namespace
//	json<array:T>                                     array of a non-array, ref-free T
//	ref:company.base.id.uscc                          reference to another entry
//
// Parse returns an immutable tree of Scalar, EntityRef, Union, Object,
// Array and TypeRef values, or a *SyntaxError. Parsing is pure: the same
// input always yields the same tree, and String renders the canonical
// form that parses back to an equal tree.
//
// The parser knows nothing about the batch. Whether an entity or a ref
// target exists is decided by the resolver and the gate rules.
package typeexpr
