package cards_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seasalt-bot/internal/cards"
)

func TestCanonicalLookupCaseInsensitive(t *testing.T) {
	v := cards.DefaultVocabulary()

	got, ok := v.Canonical("Crabs")
	require.True(t, ok)
	assert.Equal(t, cards.Crab, got)

	got, ok = v.Canonical(" SHOAL OF FISH ")
	require.True(t, ok)
	assert.Equal(t, cards.Shoal, got)

	_, ok = v.Canonical("dragon")
	assert.False(t, ok)
}

func TestFormsOrderedLongestFirst(t *testing.T) {
	v := cards.DefaultVocabulary()
	forms := v.Forms()
	for i := 1; i < len(forms); i++ {
		assert.GreaterOrEqual(t, len(forms[i-1]), len(forms[i]),
			"form %q should not come after shorter %q", forms[i-1], forms[i])
	}
	// The compound forms must precede the single words they contain.
	idx := make(map[string]int, len(forms))
	for i, f := range forms {
		idx[f] = i
	}
	assert.Less(t, idx["shoal of fish"], idx["fish"])
	assert.Less(t, idx["penguin colony"], idx["colony"])
}

func TestCountAddAndClone(t *testing.T) {
	c := cards.Count{}
	c.Add(cards.Crab, 2)
	c.Add(cards.Crab, 3)
	assert.Equal(t, 5, c[cards.Crab])

	clone := c.Clone()
	clone.Add(cards.Crab, 1)
	assert.Equal(t, 5, c[cards.Crab])
	assert.Equal(t, 6, clone[cards.Crab])
}
