// Package resolver expands ref:<code> type references against a batch.
//
// Each reference is replaced, transitively, by the parsed value_type of
// the record it names. Expansion stops with a Failure when the target is
// missing, is not an active feature, has no or an unparsable type, when
// a code reappears on the active path (a cycle) or when the longest chain
// has more hops than the configured limit. Cycles are reported as such
// whatever their length; any other outcome over the limit is reported as
// too deep.
//
// Unions produced by substitution are flattened and must still have
// distinct members.
//
// Results and failures are memoized per (tenant, code) and shared by all
// records of the run, so a type referenced by many features is walked
// once.
package resolver
