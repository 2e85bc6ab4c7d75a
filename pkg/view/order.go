package view

import (
	"slices"
)

const (
	unvisited = iota
	visiting
	visited
)

// RefreshOrder returns materialized views the target depends on, directly
// or through other views, in the order they have to be refreshed: every
// object comes after everything it depends on. The target itself is not
// included.
//
// The catalog cannot hold cyclic view dependencies, so reaching a node that
// is still on the traversal path means the graph is corrupt, and
// InternalInconsistency error is returned.
func RefreshOrder(nodes []Node, target Name) ([]Name, error) {
	graph := make(map[Name]Node, len(nodes))
	for _, v := range nodes {
		graph[v.Object] = v
	}

	state := make(map[Name]int)
	var res []Name

	var visit func(Name, []Name) error
	visit = func(n Name, path []Name) error {
		path = append(slices.Clip(path), n)
		switch state[n] {
		case visiting:
			return InternalInconsistencyError(target, path)
		case visited:
			return nil
		}

		state[n] = visiting
		node := graph[n]
		deps := slices.Clone(node.DependsOn)
		slices.SortFunc(deps, Name.Compare)
		deps = slices.Compact(deps)
		for _, dep := range deps {
			if err := visit(dep, path); err != nil {
				return err
			}
		}
		state[n] = visited

		if n != target && node.Materialized {
			res = append(res, n)
		}
		return nil
	}

	if err := visit(target, nil); err != nil {
		return nil, err
	}
	return res, nil
}
