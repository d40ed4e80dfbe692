package vocab

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsEmpty(t *testing.T) {
	v := New()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.NextID())
	assert.False(t, v.Initialized())
	assert.False(t, v.HasUnknown())
	_, ok := v.UnknownID()
	assert.False(t, ok)
}

func TestInitInsertsUnknownFirst(t *testing.T) {
	v := Init()
	assert.Equal(t, 1, v.Len())
	assert.True(t, v.Initialized())
	assert.True(t, v.HasUnknown())

	id, ok := v.UnknownID()
	require.True(t, ok)
	assert.Equal(t, 0, id)

	tok, ok := v.Token(0)
	require.True(t, ok)
	assert.Equal(t, Unknown, tok)
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	v := Init()
	assert.Equal(t, 1, v.Insert("hello"))
	assert.Equal(t, 2, v.Insert("world"))
	assert.Equal(t, 3, v.NextID())
}

func TestInsertIsIdempotent(t *testing.T) {
	v := Init()
	first := v.Insert("hello")
	second := v.Insert("hello")
	assert.Equal(t, first, second)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 2, v.NextID())
}

// checkInverse asserts the forward and reverse maps are exact inverses.
func checkInverse(t *testing.T, v *Vocabulary) {
	t.Helper()
	require.Equal(t, len(v.tokens), len(v.ids))
	for tok, id := range v.tokens {
		got, ok := v.ids[id]
		require.True(t, ok, "ID %d missing from reverse map", id)
		require.Equal(t, tok, got)
		require.Less(t, id, v.next)
	}
}

func TestInvariantHoldsUnderRandomInserts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	v := Init()
	for i := 0; i < 500; i++ {
		// Repeated tokens exercise the idempotent path.
		v.Insert("tok" + strconv.Itoa(rng.Intn(100)))
	}
	checkInverse(t, v)
	assert.LessOrEqual(t, v.Len(), 101)
}

func TestCloneIsIsolated(t *testing.T) {
	v := Init()
	v.Insert("hello")

	c := v.Clone()
	c.Insert("world")

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 3, c.Len())
	_, ok := v.Lookup("world")
	assert.False(t, ok)
	checkInverse(t, v)
	checkInverse(t, c)
}

func TestEntriesSortedByID(t *testing.T) {
	v := Init()
	v.Insert("b")
	v.Insert("a")

	entries := v.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Token: Unknown, ID: 0}, entries[0])
	assert.Equal(t, Entry{Token: "b", ID: 1}, entries[1])
	assert.Equal(t, Entry{Token: "a", ID: 2}, entries[2])
}
