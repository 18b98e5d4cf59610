// Package graph holds the follow graph built from a challenge payload and the
// two solvers that run over it: mutual followers and nth-level followers.
package graph

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/SunilKividor/bfhl-webhook-client/models"
)

var recordValidate = validator.New()

// Graph maps each known user id to the deduplicated ids it follows.
// It is never modified after New returns.
type Graph struct {
	follows map[int][]int
	edges   map[int]map[int]struct{}
	ids     []int
}

// New builds a Graph from raw payload records in O(U + E). Records missing
// an id or a follows list, and duplicate ids, are rejected.
func New(records []models.UserRecord) (*Graph, error) {
	g := &Graph{
		follows: make(map[int][]int, len(records)),
		edges:   make(map[int]map[int]struct{}, len(records)),
		ids:     make([]int, 0, len(records)),
	}

	for i := range records {
		rec := &records[i]
		if err := recordValidate.Struct(rec); err != nil {
			return nil, fmt.Errorf("%w: user record %d: %v", models.ErrMalformedPayload, i, err)
		}

		id := *rec.ID
		if _, dup := g.edges[id]; dup {
			return nil, fmt.Errorf("%w: duplicate user id %d", models.ErrMalformedPayload, id)
		}

		set := make(map[int]struct{}, len(rec.Follows))
		list := make([]int, 0, len(rec.Follows))
		for _, f := range rec.Follows {
			if _, seen := set[f]; seen {
				continue
			}
			set[f] = struct{}{}
			list = append(list, f)
		}

		g.edges[id] = set
		g.follows[id] = list
		g.ids = append(g.ids, id)
	}

	slices.Sort(g.ids)
	return g, nil
}

// Len returns the number of known users.
func (g *Graph) Len() int { return len(g.ids) }

// Has reports whether id is a known user.
func (g *Graph) Has(id int) bool {
	_, ok := g.edges[id]
	return ok
}

// IDs returns all known user ids in ascending order.
func (g *Graph) IDs() []int { return slices.Clone(g.ids) }

// Follows returns the ids followed by id, in payload order. Unknown ids
// yield nil.
func (g *Graph) Follows(id int) []int { return slices.Clone(g.follows[id]) }

// FollowsUser reports whether a follows b.
func (g *Graph) FollowsUser(a, b int) bool {
	_, ok := g.edges[a][b]
	return ok
}
