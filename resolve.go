package modinspect

import "slices"

// Resolve computes a load order for target over the working set.
//
// The order is a depth-first post-order walk of the symbol-satisfaction
// graph: module A depends on module B when B provides at least one symbol A
// references. Every module in the result appears after all modules
// providing symbols it references, each name appears exactly once, and the
// sequence ends with the target. For identical input the output is
// identical.
//
// The kernel pseudo-record participates as a provider like any other
// record; callers printing a load plan filter it out by [KernelName].
//
// A target matching no record yields a *[TargetNotFoundError]. A reference
// chain that loops back on itself, directly or transitively, yields a
// *[CycleError]; a module satisfying one of its own references is not a
// cycle and resolves normally.
//
// Resolve never mutates the set. Concurrent calls over one set are safe.
func Resolve(set []*Module, target string) ([]*Module, error) {
	r := newResolver(set)
	idx, ok := r.byName[target]
	if !ok {
		return nil, &TargetNotFoundError{Target: target}
	}

	order := make([]*Module, 0, len(set))
	if err := r.visit(idx, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// resolver indexes one working set for a single resolution run. Lookups
// are by name (first record wins for duplicate names) and by provided
// symbol (all providers, in working-set order).
type resolver struct {
	set       []*Module
	byName    map[string]int
	providers map[string][]int
	visited   map[string]bool
	onStack   map[string]bool
	stack     []string // names on the active descent, for cycle reporting
}

func newResolver(set []*Module) *resolver {
	r := &resolver{
		set:       set,
		byName:    make(map[string]int, len(set)),
		providers: make(map[string][]int),
		visited:   make(map[string]bool, len(set)),
		onStack:   make(map[string]bool),
	}
	for i, mod := range set {
		if _, ok := r.byName[mod.Name]; !ok {
			r.byName[mod.Name] = i
		}
		for _, sym := range mod.Provides {
			r.providers[sym] = append(r.providers[sym], i)
		}
	}
	return r
}

func (r *resolver) visit(idx int, order *[]*Module) error {
	name := r.set[idx].Name
	if r.onStack[name] {
		return &CycleError{Stack: append(slices.Clone(r.stack), name)}
	}
	if r.visited[name] {
		return nil
	}
	r.visited[name] = true
	r.onStack[name] = true
	r.stack = append(r.stack, name)

	for _, dep := range r.dependencies(idx) {
		if r.set[dep].Name == name {
			// Self-satisfaction: providing a symbol you also reference is
			// not a dependency on yourself.
			continue
		}
		if err := r.visit(dep, order); err != nil {
			return err
		}
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.onStack[name] = false
	*order = append(*order, r.set[idx])
	return nil
}

// dependencies returns the records directly satisfying idx's references,
// each at most once, in working-set order. Visiting dependencies in set
// order is what makes the final sequence deterministic.
func (r *resolver) dependencies(idx int) []int {
	seen := make(map[int]struct{})
	var deps []int
	for _, sym := range r.set[idx].References {
		for _, p := range r.providers[sym] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			deps = append(deps, p)
		}
	}
	slices.Sort(deps)
	return deps
}
