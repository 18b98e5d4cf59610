package graph

import (
	"cmp"
	"slices"

	"github.com/SunilKividor/bfhl-webhook-client/models"
)

// MutualPairs returns every pair of users who follow each other, smaller id
// first, sorted ascending. Each pair is found from both ends; only the end
// with the smaller id emits it.
func (g *Graph) MutualPairs() models.PairList {
	pairs := make(models.PairList, 0)
	for _, u := range g.ids {
		for _, v := range g.follows[u] {
			if u >= v {
				continue
			}
			if g.FollowsUser(v, u) {
				pairs = append(pairs, [2]int{u, v})
			}
		}
	}

	slices.SortFunc(pairs, func(a, b [2]int) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
	return pairs
}
