package graph

import (
	"fmt"
	"slices"

	"github.com/SunilKividor/bfhl-webhook-client/models"
)

// Level returns the users at exactly distance n from findID along outgoing
// follow edges, in ascending order. Level 0 is findID itself, known or not.
// An empty result means no user sits at that distance.
func (g *Graph) Level(findID, n int) (models.IDList, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: level must be non-negative, got %d", models.ErrInvalidParameter, n)
	}

	visited := map[int]bool{findID: true}
	frontier := []int{findID}

	for depth := 0; depth < n && len(frontier) > 0; depth++ {
		next := make([]int, 0, len(frontier))
		for _, id := range frontier {
			for _, f := range g.follows[id] {
				// Unknown ids are dead edges.
				if visited[f] || !g.Has(f) {
					continue
				}
				visited[f] = true
				next = append(next, f)
			}
		}
		frontier = next
	}

	out := models.IDList(frontier)
	slices.Sort(out)
	return out, nil
}
