package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_JSONWireKeys(t *testing.T) {
	q := Quote{
		ID:           "a1",
		Author:       "X",
		Content:      "hi",
		Tags:         []string{},
		AuthorSlug:   "x",
		DateAdded:    NewDate(2020, time.January, 1),
		DateModified: NewDate(2020, time.January, 1),
	}

	data, err := json.Marshal(q)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"_id":"a1","author":"X","content":"hi","tags":[],"authorSlug":"x","dateAdded":"2020-01-01","dateModified":"2020-01-01"}`,
		string(data))
}

func TestQuote_DecodeUpstreamRecord(t *testing.T) {
	raw := `{"_id":"qho6kC7InWuX","content":"They can conquer who believe they can.","author":"Virgil",` +
		`"tags":["famous-quotes"],"authorSlug":"virgil","length":38,"dateAdded":"2020-06-24","dateModified":"2020-06-24"}`

	var q Quote
	require.NoError(t, json.Unmarshal([]byte(raw), &q))

	assert.Equal(t, "qho6kC7InWuX", q.ID)
	assert.Equal(t, "Virgil", q.Author)
	assert.Equal(t, []string{"famous-quotes"}, q.Tags)
	assert.Equal(t, "virgil", q.AuthorSlug)
	assert.Equal(t, NewDate(2020, time.June, 24), q.DateAdded)
}

func TestDate_RoundTrip(t *testing.T) {
	d := NewDate(2021, time.December, 9)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2021-12-09"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDate_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"timestamp", `"2020-06-24T10:00:00Z"`},
		{"number", `20200624`},
		{"bad month", `"2020-13-01"`},
		{"empty", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			assert.Error(t, json.Unmarshal([]byte(tt.input), &d))
		})
	}
}

func TestDate_ZeroMarshalsNull(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDate_NullLeavesZero(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2020, time.June, 24, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2020-06-24", DateOf(ts).String())
}

func TestQuoteList_IDs(t *testing.T) {
	list := &QuoteList{Results: []Quote{{ID: "b"}, {ID: "a"}, {ID: "c"}}}
	assert.Equal(t, []string{"b", "a", "c"}, list.IDs())

	assert.Empty(t, (&QuoteList{}).IDs())
}
