package snapshot

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aarshjul/internal/core"
)

func TestRoundTrip(t *testing.T) {
	state := State{
		Items: []core.Item{
			{
				ID:     "1",
				Title:  "Økonomimøde om æbler og Årshjul",
				Month:  "Marts",
				Week:   2,
				Cat:    core.CatKTU,
				Status: core.StatusInProgress,
				Owner:  "Søren",
				Note:   "Husk kaffe ☕",
			},
			{
				ID:    "2",
				Title: "KTU-måling",
				Month: "Juni",
				Week:  1,
				Cat:   core.CatKTU,
				Attachments: []core.Attachment{
					{Name: "dagsorden.pdf", Data: "JVBERi0="},
				},
			},
		},
		Notes: core.Notes{"Marts": "forår", "Juni": "sommerferie nærmer sig"},
	}

	token, err := Encode(state)
	require.NoError(t, err)

	decoded, err := Decode(token)
	require.NoError(t, err)

	if diff := cmp.Diff(state, decoded); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "not-a-valid-token!!!"},
		{"base64 of garbage", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"items is an object", base64.StdEncoding.EncodeToString([]byte(`{"items":{"a":1}}`))},
		{"items is a string", base64.StdEncoding.EncodeToString([]byte(`{"items":"nej"}`))},
		{"items is null", base64.StdEncoding.EncodeToString([]byte(`{"items":null}`))},
		{"items missing", base64.StdEncoding.EncodeToString([]byte(`{"notes":{}}`))},
		{"empty token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestDecode_EmptyCollections(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte(`{"items":[]}`))

	state, err := Decode(token)
	require.NoError(t, err)

	// A valid token without notes decodes to empty notes, never "keep
	// whatever was there before".
	assert.NotNil(t, state.Items)
	assert.Empty(t, state.Items)
	assert.NotNil(t, state.Notes)
	assert.Empty(t, state.Notes)
}

func TestDecode_MalformedNotesDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"notes is a string", `{"items":[{"id":"1","title":"Møde","month":"Maj","week":1,"cat":"Andet"}],"notes":"ikke et objekt"}`},
		{"notes is an array", `{"items":[{"id":"1","title":"Møde","month":"Maj","week":1,"cat":"Andet"}],"notes":[1,2]}`},
		{"notes is null", `{"items":[{"id":"1","title":"Møde","month":"Maj","week":1,"cat":"Andet"}],"notes":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := base64.StdEncoding.EncodeToString([]byte(tt.payload))

			// A broken notes value must not sink a token whose items are
			// perfectly valid.
			state, err := Decode(token)
			require.NoError(t, err)
			require.Len(t, state.Items, 1)
			assert.Equal(t, "Møde", state.Items[0].Title)
			assert.NotNil(t, state.Notes)
			assert.Empty(t, state.Notes)
		})
	}
}

func TestBuildShareURL(t *testing.T) {
	state := State{Items: []core.Item{{ID: "1", Title: "Møde", Month: "Maj", Week: 1, Cat: core.CatOther}}}

	link, err := BuildShareURL("http://localhost:8741", state, true)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/kunde", u.Path)
	assert.Equal(t, "1", u.Query().Get("print"))

	decoded, err := Decode(u.Query().Get("data"))
	require.NoError(t, err)
	assert.Equal(t, "Møde", decoded.Items[0].Title)
}

func TestBuildShareURL_NoPrintFlag(t *testing.T) {
	link, err := BuildShareURL("http://localhost:8741", State{Items: []core.Item{}}, false)
	require.NoError(t, err)
	assert.False(t, strings.Contains(link, "print="))
}
