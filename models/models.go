package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IdentityRequest is the body of the initial webhook generation request.
type IdentityRequest struct {
	Name  string `json:"name"`
	RegNo string `json:"regNo"`
	Email string `json:"email"`
}

// Envelope is the response to the identity request. Data is kept raw and
// only interpreted by the challenge dispatcher.
type Envelope struct {
	Webhook     string          `json:"webhook"`
	AccessToken Secret          `json:"accessToken"`
	Data        json.RawMessage `json:"data"`
}

// UserRecord is one user as it appears in the challenge payload. Pointer and
// slice fields stay nil when the key is missing so absence can be detected.
type UserRecord struct {
	ID      *int   `json:"id" validate:"required"`
	Name    string `json:"name,omitempty"`
	Follows []int  `json:"follows" validate:"required"`
}

// UserList decodes either a bare array of users or the nested
// {"users": [...]} object the live service returns.
type UserList []UserRecord

// UnmarshalJSON implements json.Unmarshaler.
func (l *UserList) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if trimmed[0] == '{' {
		var nested struct {
			Users *[]UserRecord `json:"users"`
		}
		if err := json.Unmarshal(trimmed, &nested); err != nil {
			return err
		}
		if nested.Users == nil {
			return fmt.Errorf("users object has no users array")
		}
		*l = UserList(*nested.Users)
		return nil
	}

	var users []UserRecord
	if err := json.Unmarshal(trimmed, &users); err != nil {
		return err
	}
	*l = UserList(users)
	return nil
}

// Outcome is the answer computed by exactly one solver. It is implemented
// only by PairList and IDList.
type Outcome interface {
	Len() int
	outcome()
}

// PairList holds mutual-follow pairs, each with the smaller id first.
type PairList [][2]int

func (p PairList) Len() int { return len(p) }
func (PairList) outcome()    {}

// MarshalJSON renders an empty list as [] rather than null.
func (p PairList) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([][2]int(p))
}

// IDList holds user ids in ascending order.
type IDList []int

func (l IDList) Len() int { return len(l) }
func (IDList) outcome()    {}

// MarshalJSON renders an empty list as [] rather than null.
func (l IDList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(l))
}

// SubmissionResult is the body posted back to the webhook.
type SubmissionResult struct {
	RegNo   string  `json:"regNo"`
	Outcome Outcome `json:"outcome"`
}
