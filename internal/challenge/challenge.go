// Package challenge decodes the payload of a challenge envelope into one of
// the known problem shapes and solves it.
package challenge

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/SunilKividor/bfhl-webhook-client/internal/graph"
	"github.com/SunilKividor/bfhl-webhook-client/models"
)

// Problem kinds, as reported in logs and metrics.
const (
	KindMutual = "mutual_followers"
	KindLevel  = "nth_level_followers"
)

// Problem is implemented only by MutualProblem and LevelProblem.
type Problem interface {
	Kind() string
	problem()
}

// MutualProblem asks for every pair of users who follow each other.
type MutualProblem struct {
	Users []models.UserRecord
}

// Kind implements Problem.
func (MutualProblem) Kind() string { return KindMutual }
func (MutualProblem) problem()     {}

// LevelProblem asks for the users exactly N follow-hops away from FindID.
type LevelProblem struct {
	Users  []models.UserRecord
	FindID int
	N      int
}

// Kind implements Problem.
func (LevelProblem) Kind() string { return KindLevel }
func (LevelProblem) problem()     {}

// payload is the union of every field a problem may carry. Pointers tell
// a missing key apart from a zero value.
type payload struct {
	Users  *models.UserList `json:"users"`
	N      *models.FlexInt  `json:"n"`
	FindID *models.FlexInt  `json:"findId"`
}

// Decode selects the problem described by raw. A payload that matches
// neither shape, or only half of the level shape, is rejected rather than
// defaulted.
func Decode(raw json.RawMessage) (Problem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: payload is empty", models.ErrUnrecognizedChallenge)
	}

	var p payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedPayload, err)
	}

	switch {
	case p.N != nil && p.FindID != nil:
		if p.Users == nil {
			return nil, fmt.Errorf("%w: level problem has no users", models.ErrMalformedPayload)
		}
		return LevelProblem{Users: *p.Users, FindID: p.FindID.Int(), N: p.N.Int()}, nil
	case p.N != nil || p.FindID != nil:
		return nil, fmt.Errorf("%w: level problem needs both n and findId", models.ErrUnrecognizedChallenge)
	case p.Users != nil:
		return MutualProblem{Users: *p.Users}, nil
	default:
		return nil, fmt.Errorf("%w: payload has neither users nor n/findId", models.ErrUnrecognizedChallenge)
	}
}

// Solve runs the one solver matching p.
func Solve(p Problem) (models.Outcome, error) {
	switch p := p.(type) {
	case MutualProblem:
		g, err := graph.New(p.Users)
		if err != nil {
			return nil, err
		}
		return g.MutualPairs(), nil
	case LevelProblem:
		g, err := graph.New(p.Users)
		if err != nil {
			return nil, err
		}
		ids, err := g.Level(p.FindID, p.N)
		if err != nil {
			return nil, err
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("%w: unsupported problem %T", models.ErrUnrecognizedChallenge, p)
	}
}

// Dispatch decodes raw and solves it.
func Dispatch(raw json.RawMessage) (Problem, models.Outcome, error) {
	p, err := Decode(raw)
	if err != nil {
		return nil, nil, err
	}
	out, err := Solve(p)
	if err != nil {
		return p, nil, err
	}
	return p, out, nil
}
