package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord("b", 1, "a", "x", "b", 2, "dangling")

	assert.Equal(t, []string{"b", "a", "dangling"}, rec.Keys())

	v, ok := rec.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = rec.Get("dangling")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestRecord_MarshalJSON_KeepsOrder(t *testing.T) {
	rec := NewRecord("zeta", 1, "alpha", "two", "mid", NewRecord("y", true, "x", nil))

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.Equal(t, `{"zeta":1,"alpha":"two","mid":{"y":true,"x":null}}`, string(data))
}

func TestRecord_MarshalJSON_Nil(t *testing.T) {
	var rec Record
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestRecord_UnmarshalJSON_KeepsOrder(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`{"c": 3, "a": [1, {"q": 1, "p": 2}], "b": "x"}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "a", "b"}, rec.Keys())

	c, _ := rec.Get("c")
	assert.Equal(t, json.Number("3"), c)

	a, _ := rec.Get("a")
	items, ok := a.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)
	nested, ok := items[1].(Record)
	require.True(t, ok)
	assert.Equal(t, []string{"q", "p"}, nested.Keys())
}

func TestRecord_UnmarshalJSON_NotObject(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`[1, 2]`), &rec)
	assert.Error(t, err)
}

func TestRecord_RoundTrip(t *testing.T) {
	input := `{"name":"web-01","cpu":12.5,"tags":["a","b"],"ok":false}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(input), &rec))

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}
