// Package snapshot encodes a frozen copy of the planner state into a
// URL-safe token so the read-only customer view can reconstruct it
// without access to the store.
package snapshot

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"aarshjul/internal/core"
)

// ErrInvalidToken wraps every way a token can fail to decode: bad
// base64, bad JSON, or an items field that is not an array. Callers fall
// back to the store on this error; they never surface it as a failure.
var ErrInvalidToken = errors.New("invalid snapshot token")

// State is the payload a share link carries. The JSON field names match
// the persisted collections, so an exported token stays readable across
// versions.
type State struct {
	Items []core.Item `json:"items"`
	Notes core.Notes  `json:"notes,omitempty"`
}

// wireState defers parsing of both collections: a non-array items value
// is rejected explicitly, while a malformed notes value degrades to
// empty notes instead of sinking the whole token.
type wireState struct {
	Items json.RawMessage `json:"items"`
	Notes json.RawMessage `json:"notes"`
}

// Encode serializes the state to a base64 token. The token itself is
// plain std-base64 text; BuildShareURL handles percent-escaping for URL
// embedding. Non-ASCII text round-trips exactly (JSON strings are UTF-8).
func Encode(state State) (string, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode parses a token back into a State. A missing or malformed notes
// object decodes to empty notes; the decoder never carries prior state
// forward. Any structural problem yields ErrInvalidToken.
func Decode(token string) (State, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var wire wireState
	if err := json.Unmarshal(raw, &wire); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var items []core.Item
	if len(wire.Items) == 0 || string(wire.Items) == "null" {
		return State{}, fmt.Errorf("%w: missing items", ErrInvalidToken)
	}
	if err := json.Unmarshal(wire.Items, &items); err != nil {
		return State{}, fmt.Errorf("%w: items is not an array", ErrInvalidToken)
	}
	if items == nil {
		items = []core.Item{}
	}

	notes := core.Notes{}
	if len(wire.Notes) > 0 {
		if err := json.Unmarshal(wire.Notes, &notes); err != nil || notes == nil {
			notes = core.Notes{}
		}
	}

	return State{Items: items, Notes: notes}, nil
}

// BuildShareURL assembles the customer-view link for a state. When print
// is set the view triggers the browser's print dialog after first render.
func BuildShareURL(base string, state State, print bool) (string, error) {
	token, err := Encode(state)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.Path = "/kunde"

	q := url.Values{}
	q.Set("data", token)
	if print {
		q.Set("print", "1")
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
