package resolver

import (
	"finsem-hq/bizgate/pkg/bizmeta/batch"
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/typeexpr"
)

// graph is the reference graph of a batch. A node is a record that can
// be a reference target (an active feature with a parsable value_type);
// its edges are the codes its type refers to, in order of appearance.
// The graph is read-only once buildGraph returns.
type graph struct {
	parsed map[record.Key]typeexpr.Expr
	edges  map[record.Key][]string
	cyclic map[record.Key]bool
	cycles map[record.Key][]string
}

func buildGraph(b *batch.Batch) *graph {
	g := &graph{
		parsed: make(map[record.Key]typeexpr.Expr),
		edges:  make(map[record.Key][]string),
		cyclic: make(map[record.Key]bool),
		cycles: make(map[record.Key][]string),
	}

	for i := 0; i < b.Len(); i++ {
		if b.IsDuplicate(i) || b.FirstOccurrence(i) < 0 {
			continue
		}
		r := b.At(i)
		if !isTargetShaped(r) {
			continue
		}
		e, err := typeexpr.Parse(r.ValueType)
		if err != nil {
			continue
		}
		g.parsed[r.Key()] = e
		g.edges[r.Key()] = typeexpr.Refs(e)
	}

	g.markCycles(b)
	for i := 0; i < b.Len(); i++ {
		k := b.At(i).Key()
		if g.cyclic[k] && g.cycles[k] == nil {
			g.findCycle(k)
		}
	}
	return g
}

func isTargetShaped(r *record.Record) bool {
	return r.IsFeature() && r.Status == record.StatusActive && r.ValueType != ""
}

func (g *graph) successors(k record.Key) []record.Key {
	codes := g.edges[k]
	out := make([]record.Key, 0, len(codes))
	for _, c := range codes {
		next := record.Key{TenantID: k.TenantID, Code: c}
		if _, ok := g.parsed[next]; ok {
			out = append(out, next)
		}
	}
	return out
}

// frame is one level of an explicit depth-first walk.
type frame struct {
	v    record.Key
	succ []record.Key
	next int
}

// markCycles flags every node that lies on a cycle, using Tarjan's
// strongly connected components. Nodes are visited in batch order. The
// walk keeps its own stack so chain length does not bound goroutine
// stack growth.
func (g *graph) markCycles(b *batch.Batch) {
	var (
		index    = 0
		indexOf  = make(map[record.Key]int)
		lowlink  = make(map[record.Key]int)
		onStack  = make(map[record.Key]bool)
		selfLoop = make(map[record.Key]bool)
		stack    []record.Key
		frames   []frame
	)

	push := func(v record.Key) {
		indexOf[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true
		frames = append(frames, frame{v: v, succ: g.successors(v)})
	}

	for i := 0; i < b.Len(); i++ {
		root := b.At(i).Key()
		if _, ok := g.parsed[root]; !ok {
			continue
		}
		if _, seen := indexOf[root]; seen {
			continue
		}

		push(root)
		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			if f.next < len(f.succ) {
				w := f.succ[f.next]
				f.next++
				if w == f.v {
					selfLoop[w] = true
				}
				if _, seen := indexOf[w]; !seen {
					push(w)
				} else if onStack[w] {
					lowlink[f.v] = min(lowlink[f.v], indexOf[w])
				}
				continue
			}

			v := f.v
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].v
				lowlink[parent] = min(lowlink[parent], lowlink[v])
			}
			if lowlink[v] != indexOf[v] {
				continue
			}

			var component []record.Key
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			if len(component) > 1 || selfLoop[v] {
				for _, w := range component {
					g.cyclic[w] = true
				}
			}
		}
	}
}

// findCycle records a cycle that starts and ends at k, following edges
// in order of appearance. k must be cyclic. When every node on the cycle
// has a single cyclic successor, the walk from any of them finds the
// same cycle, so the result is shared by all of them.
func (g *graph) findCycle(k record.Key) {
	visited := map[record.Key]bool{k: true}
	frames := []frame{{v: k, succ: g.cyclicSuccessors(k)}}

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		if f.next == len(f.succ) {
			frames = frames[:len(frames)-1]
			continue
		}
		w := f.succ[f.next]
		f.next++
		if w == k {
			path := make([]string, len(frames))
			simple := true
			for i, fr := range frames {
				path[i] = fr.v.Code
				simple = simple && len(fr.succ) == 1
			}
			cycle := canonicalCycle(path)
			g.cycles[k] = cycle
			if simple {
				for _, fr := range frames {
					g.cycles[fr.v] = cycle
				}
			}
			return
		}
		if !visited[w] {
			visited[w] = true
			frames = append(frames, frame{v: w, succ: g.cyclicSuccessors(w)})
		}
	}
	g.cycles[k] = []string{k.Code, k.Code}
}

func (g *graph) cyclicSuccessors(k record.Key) []record.Key {
	var out []record.Key
	for _, w := range g.successors(k) {
		if g.cyclic[w] {
			out = append(out, w)
		}
	}
	return out
}

// cycleThrough returns the cycle recorded for k.
func (g *graph) cycleThrough(k record.Key) []string {
	if c, ok := g.cycles[k]; ok {
		return c
	}
	return []string{k.Code, k.Code}
}
