package challenge_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SunilKividor/bfhl-webhook-client/internal/challenge"
	"github.com/SunilKividor/bfhl-webhook-client/models"
)

const sampleUsers = `[{"id":1,"name":"a","follows":[2,3]},{"id":2,"name":"b","follows":[1]},{"id":3,"name":"c","follows":[1,2]}]`

func TestDecode_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind string
		wantErr  error
	}{
		{name: "flat users", raw: `{"users":` + sampleUsers + `}`, wantKind: challenge.KindMutual},
		{name: "nested users", raw: `{"users":{"users":` + sampleUsers + `}}`, wantKind: challenge.KindMutual},
		{name: "level", raw: `{"users":` + sampleUsers + `,"n":1,"findId":1}`, wantKind: challenge.KindLevel},
		{name: "level nested users", raw: `{"users":{"users":` + sampleUsers + `},"n":2,"findId":1}`, wantKind: challenge.KindLevel},
		{name: "empty object", raw: `{}`, wantErr: models.ErrUnrecognizedChallenge},
		{name: "null", raw: `null`, wantErr: models.ErrUnrecognizedChallenge},
		{name: "absent", raw: ``, wantErr: models.ErrUnrecognizedChallenge},
		{name: "only n", raw: `{"users":` + sampleUsers + `,"n":1}`, wantErr: models.ErrUnrecognizedChallenge},
		{name: "only findId", raw: `{"users":` + sampleUsers + `,"findId":1}`, wantErr: models.ErrUnrecognizedChallenge},
		{name: "level without users", raw: `{"n":1,"findId":1}`, wantErr: models.ErrMalformedPayload},
		{name: "non numeric n", raw: `{"users":[],"n":"two","findId":1}`, wantErr: models.ErrMalformedPayload},
		{name: "fractional findId", raw: `{"users":[],"n":1,"findId":1.5}`, wantErr: models.ErrMalformedPayload},
		{name: "bool n", raw: `{"users":[],"n":true,"findId":1}`, wantErr: models.ErrMalformedPayload},
		{name: "users object without array", raw: `{"users":{"people":[]}}`, wantErr: models.ErrMalformedPayload},
		{name: "users not a list", raw: `{"users":"nope"}`, wantErr: models.ErrMalformedPayload},
		{name: "broken json", raw: `{"users":[`, wantErr: models.ErrMalformedPayload},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := challenge.Decode(json.RawMessage(tc.raw))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, p.Kind())
		})
	}
}

func TestDecode_CoercesLevelFields(t *testing.T) {
	tests := []struct {
		name       string
		n, findID  string
		wantN      int
		wantFindID int
	}{
		{name: "integers", n: `2`, findID: `7`, wantN: 2, wantFindID: 7},
		{name: "strings", n: `"2"`, findID: `" 7 "`, wantN: 2, wantFindID: 7},
		{name: "integral floats", n: `2.0`, findID: `7e0`, wantN: 2, wantFindID: 7},
		{name: "negative n is kept for the solver", n: `-1`, findID: `7`, wantN: -1, wantFindID: 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := `{"users":[],"n":` + tc.n + `,"findId":` + tc.findID + `}`
			p, err := challenge.Decode(json.RawMessage(raw))
			require.NoError(t, err)

			lp, ok := p.(challenge.LevelProblem)
			require.True(t, ok, "got %T", p)
			assert.Equal(t, tc.wantN, lp.N)
			assert.Equal(t, tc.wantFindID, lp.FindID)
		})
	}
}

func TestDispatch_Mutual(t *testing.T) {
	p, out, err := challenge.Dispatch(json.RawMessage(`{"users":` + sampleUsers + `}`))
	require.NoError(t, err)
	assert.Equal(t, challenge.KindMutual, p.Kind())
	assert.Equal(t, models.PairList{{1, 2}, {1, 3}}, out)
}

func TestDispatch_Level(t *testing.T) {
	tests := []struct {
		n    int
		want models.IDList
	}{
		{n: 0, want: models.IDList{1}},
		{n: 1, want: models.IDList{2, 3}},
		{n: 2, want: models.IDList{}},
	}

	for _, tc := range tests {
		raw, err := json.Marshal(map[string]any{
			"users":  json.RawMessage(sampleUsers),
			"n":      tc.n,
			"findId": 1,
		})
		require.NoError(t, err)

		_, out, err := challenge.Dispatch(raw)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out, "n=%d", tc.n)
	}
}

func TestDispatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "negative level", raw: `{"users":[],"n":-1,"findId":1}`, wantErr: models.ErrInvalidParameter},
		{name: "user without id", raw: `{"users":[{"follows":[1]}]}`, wantErr: models.ErrMalformedPayload},
		{name: "user without follows", raw: `{"users":[{"id":1}]}`, wantErr: models.ErrMalformedPayload},
		{name: "unrecognized", raw: `{"other":1}`, wantErr: models.ErrUnrecognizedChallenge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, out, err := challenge.Dispatch(json.RawMessage(tc.raw))
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, out)
		})
	}
}

func TestSolve_UnknownProblem(t *testing.T) {
	_, err := challenge.Solve(nil)
	require.ErrorIs(t, err, models.ErrUnrecognizedChallenge)
}
