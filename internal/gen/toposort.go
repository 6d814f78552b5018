package gen

import (
	"sort"

	"castledb-generator/internal/schema"
)

// topoSort returns indices in emission order.
//
// Nodes are by index in the input slice.
// depsFn(i) yields indices that must be emitted before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index, so unconstrained nodes keep their input order. A cycle does
// not fail the sort: the smallest unemitted index is emitted as if its
// dependencies were met, and is reported in broken.
func topoSort(n int, depsFn func(i int) []int) (order, broken []int) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := 0; i < n; i++ {
		seen := make(map[int]bool)

		for _, d := range depsFn(i) {
			if d < 0 || d >= n || d == i || seen[d] {
				continue
			}

			seen[d] = true
			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	// Deterministic traversal.
	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := 0; i < n; i++ {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	done := make([]bool, n)
	order = make([]int, 0, n)

	for len(order) < n {
		if len(ready) == 0 {
			for i := 0; i < n; i++ {
				if !done[i] {
					ready = append(ready, i)
					broken = append(broken, i)

					break
				}
			}
		}

		i := ready[0]
		ready = ready[1:]

		done[i] = true
		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 && !done[j] {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	return order, broken
}

// OrderSheets returns the sheets of s ordered so that every sheet referenced
// by a Ref column comes before the sheets referencing it. Ties keep
// declaration order. Sheets at which a reference cycle had to be broken are
// returned in cycles.
func OrderSheets(s *schema.Schema) (ordered, cycles []*schema.Sheet) {
	index := make(map[string]int, len(s.Sheets))
	for i, sh := range s.Sheets {
		index[sh.Name] = i
	}

	order, broken := topoSort(len(s.Sheets), func(i int) []int {
		var deps []int

		for _, col := range s.Sheets[i].Columns {
			if col.TypeID != schema.TypeRef {
				continue
			}

			if j, ok := index[col.Key]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})

	ordered = make([]*schema.Sheet, 0, len(order))
	for _, i := range order {
		ordered = append(ordered, s.Sheets[i])
	}

	for _, i := range broken {
		cycles = append(cycles, s.Sheets[i])
	}

	return ordered, cycles
}
