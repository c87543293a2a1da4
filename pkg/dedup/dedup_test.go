package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	key  string
	body string
}

func keyOf(i item) string { return i.key }

func TestFilterDropsExistingKeys(t *testing.T) {
	existing := Keys([]string{"http-verbs", "tcp-handshake"})
	candidates := []item{
		{key: "http-verbs", body: "old"},
		{key: "dns-resolution", body: "new"},
		{key: "tcp-handshake", body: "old"},
	}

	got := Filter(candidates, keyOf, existing)

	assert.Equal(t, []item{{key: "dns-resolution", body: "new"}}, got)
}

func TestFilterPreservesOrder(t *testing.T) {
	candidates := []item{{key: "c"}, {key: "a"}, {key: "b"}}

	got := Filter(candidates, keyOf, nil)

	assert.Equal(t, candidates, got)
}

func TestFilterCollapsesInBatchDuplicates(t *testing.T) {
	candidates := []item{
		{key: "a", body: "first"},
		{key: "a", body: "second"},
		{key: "b"},
	}

	got := Filter(candidates, keyOf, Keys(nil))

	assert.Len(t, got, 2)
	assert.Equal(t, "first", got[0].body, "first occurrence wins")
}

func TestFilterIsIdempotent(t *testing.T) {
	existing := Keys([]string{"x"})
	candidates := []item{{key: "x"}, {key: "y"}, {key: "z"}}

	once := Filter(candidates, keyOf, existing)
	twice := Filter(once, keyOf, existing)

	assert.Equal(t, once, twice)
}

func TestFilterEmptyCandidates(t *testing.T) {
	got := Filter(nil, keyOf, Keys([]string{"a"}))
	assert.Empty(t, got)
}

func TestKeys(t *testing.T) {
	set := Keys([]string{"a", "b", "a"})
	assert.Len(t, set, 2)
	_, ok := set["a"]
	assert.True(t, ok)
}
