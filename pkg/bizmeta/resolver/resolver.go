package resolver

import (
	"strconv"
	"sync"
	"sync/atomic"

	"finsem-hq/bizgate/pkg/bizmeta/batch"
	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/typeexpr"
)

// DefaultMaxDepth is the number of reference hops allowed when none is
// configured.
const DefaultMaxDepth = 5

// Resolver expands ref:<code> nodes against one batch. The reference
// graph is analysed once by New; expansion results are then memoized per
// (tenant, code) for the lifetime of the resolver, which is one gate run.
// A Resolver is safe for concurrent use.
type Resolver struct {
	batch    *batch.Batch
	graph    *graph
	maxDepth int

	mu   sync.RWMutex
	memo map[record.Key]*result

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the number of hops a reference chain may take.
// Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n >= 1 {
			r.maxDepth = n
		}
	}
}

// New creates a resolver over b.
func New(b *batch.Batch, opts ...Option) *Resolver {
	r := &Resolver{
		batch:    b,
		maxDepth: DefaultMaxDepth,
		graph:    buildGraph(b),
		memo:     make(map[record.Key]*result),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxDepth returns the configured hop limit.
func (r *Resolver) MaxDepth() int {
	return r.maxDepth
}

// Stats reports memo usage.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// Stats returns a snapshot of the memo counters.
func (r *Resolver) Stats() Stats {
	r.mu.RLock()
	n := len(r.memo)
	r.mu.RUnlock()
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load(), Entries: n}
}

// Resolution is the outcome of expanding the type of one record.
type Resolution struct {
	// Expr is the fully expanded type; nil when Failure is set.
	Expr typeexpr.Expr
	// Chain is the longest reference chain followed, cut after
	// MaxDepth()+1 codes.
	Chain []string
	// Failure is set when expansion failed.
	Failure *Failure
}

// Depth returns the number of hops in the longest chain, at most
// MaxDepth()+1.
func (res Resolution) Depth() int {
	return len(res.Chain)
}

// OK reports whether expansion succeeded.
func (res Resolution) OK() bool {
	return res.Failure == nil
}

// Resolve expands every TypeRef in expr, the parsed value_type of a
// record of the given tenant. An expression without references is
// returned unchanged.
func (r *Resolver) Resolve(tenantID string, expr typeexpr.Expr) Resolution {
	if !typeexpr.ContainsRef(expr) {
		return Resolution{Expr: expr}
	}

	res := r.expand(tenantID, expr)

	if res.fail != nil && res.fail.Rule == errors.RuleTypeRefCycle {
		return Resolution{Chain: res.fail.Chain, Failure: res.fail}
	}
	if len(res.longest) > r.maxDepth {
		return Resolution{Chain: res.longest, Failure: r.tooDeep(res.longest)}
	}
	if res.fail != nil {
		return Resolution{Chain: res.longest, Failure: res.fail}
	}
	return Resolution{Expr: res.expr, Chain: res.longest}
}

// ResolveCode expands the value_type of the record (tenantID, code)
// exactly as a ref:<code> pointing at it would be expanded.
func (r *Resolver) ResolveCode(tenantID, code string) Resolution {
	return r.Resolve(tenantID, typeexpr.TypeRef{Code: code})
}

// result is the memoized outcome of expanding one code or expression.
// longest never holds more than maxDepth+1 codes.
type result struct {
	expr    typeexpr.Expr
	longest []string
	fail    *Failure
}

func (r *Resolver) peek(key record.Key) bool {
	r.mu.RLock()
	_, ok := r.memo[key]
	r.mu.RUnlock()
	return ok
}

func (r *Resolver) cached(key record.Key) (*result, bool) {
	r.mu.RLock()
	res, ok := r.memo[key]
	r.mu.RUnlock()
	if ok {
		r.hits.Add(1)
	}
	return res, ok
}

// store memoizes res unless another goroutine got there first, and
// returns the memoized value.
func (r *Resolver) store(key record.Key, res *result) *result {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, exists := r.memo[key]; exists {
		return prev
	}
	r.memo[key] = res
	return res
}

func (r *Resolver) expand(tenantID string, e typeexpr.Expr) *result {
	switch v := e.(type) {
	case typeexpr.TypeRef:
		return r.resolveCode(tenantID, v.Code)

	case typeexpr.Union:
		var longest []string
		members := make([]typeexpr.Expr, 0, len(v.Members))
		for _, m := range v.Members {
			res := r.expand(tenantID, m)
			if len(res.longest) > len(longest) {
				longest = res.longest
			}
			if res.fail != nil {
				return &result{longest: longest, fail: res.fail}
			}
			members = append(members, typeexpr.Members(res.expr)...)
		}
		if dup, ok := duplicateMember(members); ok {
			target := ""
			if len(longest) > 0 {
				target = longest[0]
			}
			return &result{longest: longest, fail: &Failure{
				Rule:   errors.RuleTypeRefResolvedInvalid,
				Target: target,
				Chain:  longest,
				Detail: "duplicate union member " + strconv.Quote(dup),
			}}
		}
		return &result{expr: typeexpr.Union{Members: members}, longest: longest}

	default:
		// Arrays cannot hold references.
		return &result{expr: e}
	}
}

func (r *Resolver) resolveCode(tenantID, code string) *result {
	key := record.Key{TenantID: tenantID, Code: code}
	if res, ok := r.cached(key); ok {
		return res
	}
	r.warm(key)
	return r.computeAndStore(key)
}

func (r *Resolver) computeAndStore(key record.Key) *result {
	r.misses.Add(1)
	return r.store(key, r.compute(key))
}

// warm memoizes the acyclic targets reachable from key, deepest first,
// so that compute finds every reference it follows already expanded.
// Cyclic and unresolvable targets need no lookahead and are left to
// compute. key itself is not memoized.
func (r *Resolver) warm(key record.Key) {
	if _, ok := r.graph.parsed[key]; !ok || r.graph.cyclic[key] {
		return
	}

	visited := map[record.Key]bool{key: true}
	frames := []frame{{v: key, succ: r.graph.successors(key)}}
	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		if f.next < len(f.succ) {
			w := f.succ[f.next]
			f.next++
			if visited[w] || r.graph.cyclic[w] || r.peek(w) {
				continue
			}
			visited[w] = true
			frames = append(frames, frame{v: w, succ: r.graph.successors(w)})
			continue
		}

		v := f.v
		frames = frames[:len(frames)-1]
		if v != key {
			r.computeAndStore(v)
		}
	}
}

// compute expands one target. Every acyclic reference it follows has
// been memoized by warm, so it never recurses more than one hop.
func (r *Resolver) compute(key record.Key) *result {
	code := key.Code
	single := []string{code}
	fail := func(rule errors.RuleID, detail string) *result {
		return &result{longest: single, fail: &Failure{Rule: rule, Target: code, Chain: single, Detail: detail}}
	}

	target, ok := r.batch.Lookup(key.TenantID, code)
	if !ok {
		return fail(errors.RuleTypeRefNotFound, "")
	}
	if !target.IsFeature() {
		return fail(errors.RuleTypeRefTargetNotFeature, string(target.ObjectType))
	}
	if target.Status != record.StatusActive {
		return fail(errors.RuleTypeRefTargetNotActive, string(target.Status))
	}
	if target.ValueType == "" {
		return fail(errors.RuleTypeRefTargetNoType, "")
	}
	inner, ok := r.graph.parsed[key]
	if !ok {
		_, err := typeexpr.Parse(target.ValueType)
		return fail(errors.RuleTypeRefResolvedInvalid, err.Error())
	}
	if r.graph.cyclic[key] {
		return &result{fail: &Failure{
			Rule:   errors.RuleTypeRefCycle,
			Target: code,
			Chain:  r.graph.cycleThrough(key),
		}}
	}

	child := r.expand(key.TenantID, inner)
	longest := r.prepend(code, child.longest)
	tooDeep := len(longest) > r.maxDepth
	if child.fail != nil {
		if tooDeep && child.fail.Rule != errors.RuleTypeRefCycle {
			return &result{longest: longest, fail: r.tooDeep(longest)}
		}
		return &result{longest: longest, fail: child.fail.prefixed(code)}
	}
	return &result{expr: child.expr, longest: longest}
}

// prepend returns code followed by chain, cut after maxDepth+1 codes.
// Anything beyond that only confirms the chain is too deep.
func (r *Resolver) prepend(code string, chain []string) []string {
	n := min(len(chain)+1, r.maxDepth+1)
	out := make([]string, n)
	out[0] = code
	copy(out[1:], chain)
	return out
}

func (r *Resolver) tooDeep(chain []string) *Failure {
	chain = chain[:min(len(chain), r.maxDepth+1)]
	return &Failure{
		Rule:   errors.RuleTypeRefTooDeep,
		Target: chain[len(chain)-1],
		Chain:  chain,
		Detail: strconv.Itoa(r.maxDepth),
	}
}

func duplicateMember(members []typeexpr.Expr) (string, bool) {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		s := m.String()
		if seen[s] {
			return s, true
		}
		seen[s] = true
	}
	return "", false
}
