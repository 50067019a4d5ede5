package dag

import (
	"fmt"
	"maps"
	"slices"
)

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		refs:      make(map[string]set),
		referrers: make(map[string]set),
	}
}

// AddNode declares a construct. Declaring it again is a no-op.
func (g *Graph) AddNode(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.refs[id]; ok {
		return
	}
	g.refs[id] = set{}
	g.referrers[id] = set{}
}

// Len returns the number of declared constructs.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.refs)
}

// AddEdge records that toID references fromID. Both must be declared and a
// construct cannot reference itself.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("construct %s references itself", fromID)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.refs[fromID]; !ok {
		return fmt.Errorf("referenced construct not declared: %s", fromID)
	}
	if _, ok := g.refs[toID]; !ok {
		return fmt.Errorf("referencing construct not declared: %s", toID)
	}
	g.refs[toID][fromID] = struct{}{}
	g.referrers[fromID][toID] = struct{}{}
	return nil
}

// Dependencies returns the sorted IDs of the constructs id references.
func (g *Graph) Dependencies(id string) ([]string, error) {
	return g.sorted(g.refs, id)
}

// Dependents returns the sorted IDs of the constructs referencing id.
func (g *Graph) Dependents(id string) ([]string, error) {
	return g.sorted(g.referrers, id)
}

func (g *Graph) sorted(index map[string]set, id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids, ok := index[id]
	if !ok {
		return nil, fmt.Errorf("construct not declared: %s", id)
	}
	return slices.Sorted(maps.Keys(ids)), nil
}

// DetectCycles returns an error naming the first construct, in ID order,
// found on a reference cycle.
func (g *Graph) DetectCycles() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[string]int, len(g.refs))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case onPath:
			return fmt.Errorf("reference cycle involving construct %s", id)
		}
		state[id] = onPath
		for _, next := range slices.Sorted(maps.Keys(g.referrers[id])) {
			if err := visit(next); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for _, id := range slices.Sorted(maps.Keys(g.refs)) {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}
