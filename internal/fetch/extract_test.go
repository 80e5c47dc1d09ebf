package fetch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestExtractItemsShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"data list", `{"data":[{"id":"1"},{"id":"2"}]}`, 2},
		{"nested data", `{"data":{"data":[{"id":"1"}],"last_page":3}}`, 1},
		{"internships key", `{"internships":[{"id":"1"},{"id":"2"},{"id":"3"}]}`, 3},
		{"bare array", `[{"id":"1"}]`, 1},
		{"fallback list", `{"results":[{"id":"1"},{"id":"2"}],"total":2}`, 2},
		{"empty object", `{}`, 0},
		{"no list anywhere", `{"message":"ok","total":0}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := extractItems(decode(t, tc.raw))
			assert.Len(t, items, tc.want)
		})
	}
}

func TestExtractItemsNil(t *testing.T) {
	assert.Nil(t, extractItems(nil))
}

func TestExtractItemsSkipsNonObjectEntries(t *testing.T) {
	items := extractItems(decode(t, `{"data":[{"id":"1"},"junk",3,{"id":"2"}]}`))
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0]["id"])
	assert.Equal(t, "2", items[1]["id"])
}

func TestDeclaredLastPage(t *testing.T) {
	n, ok := declaredLastPage(decode(t, `{"data":[],"last_page":4}`))
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	n, ok = declaredLastPage(decode(t, `{"meta":{"last_page":2}}`))
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = declaredLastPage(decode(t, `{"data":{"data":[],"last_page":7}}`))
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = declaredLastPage(decode(t, `{"data":[]}`))
	assert.False(t, ok)

	_, ok = declaredLastPage(decode(t, `[]`))
	assert.False(t, ok)
}
