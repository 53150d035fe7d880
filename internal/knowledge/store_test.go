package knowledge_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seasalt-bot/internal/knowledge"
)

func newStore(t *testing.T) *knowledge.Store {
	t.Helper()
	store, err := knowledge.New(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReplaceSourceRoundTrip(t *testing.T) {
	store := newStore(t)

	chunks := []knowledge.Chunk{
		{ID: "c1", Source: "rules.md", Seq: 0, Content: "Duo cards score per pair.", Embedding: []float32{1, 0}},
		{ID: "c2", Source: "rules.md", Seq: 1, Content: "Mermaids unlock the color bonus.", Embedding: []float32{0, 1}},
	}
	require.NoError(t, store.ReplaceSource("rules.md", "hash-1", chunks))

	hash, err := store.SourceHash("rules.md")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", hash)

	got, err := store.AllChunks()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, []float32{0, 1}, got[1].Embedding)

	// Replacing swaps the old chunks out entirely.
	require.NoError(t, store.ReplaceSource("rules.md", "hash-2", chunks[:1]))
	got, err = store.AllChunks()
	require.NoError(t, err)
	assert.Len(t, got, 1)

	sources, err := store.Sources()
	require.NoError(t, err)
	assert.Equal(t, []string{"rules.md"}, sources)
}

func TestSourceHashUnknownSource(t *testing.T) {
	store := newStore(t)
	hash, err := store.SourceHash("never-indexed.md")
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestSearchRanksBySimilarity(t *testing.T) {
	store := newStore(t)
	chunks := []knowledge.Chunk{
		{ID: "a", Source: "rules.md", Seq: 0, Content: "pairs", Embedding: []float32{1, 0, 0}},
		{ID: "b", Source: "rules.md", Seq: 1, Content: "mermaids", Embedding: []float32{0, 1, 0}},
		{ID: "c", Source: "rules.md", Seq: 2, Content: "multipliers", Embedding: []float32{0.9, 0.1, 0}},
	}
	require.NoError(t, store.ReplaceSource("rules.md", "h", chunks))

	got, err := store.Search([]float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}
