package knowledge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Embedder produces embedding vectors for text passages.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

const (
	defaultChunkSize = 1000
	defaultOverlap   = 150
)

// Indexer loads rule documents from disk into the store, embedding
// only sources whose content changed since the last run.
type Indexer struct {
	store     *Store
	embedder  Embedder
	ChunkSize int
	Overlap   int
}

// NewIndexer builds an indexer with the default chunking parameters.
func NewIndexer(store *Store, embedder Embedder) *Indexer {
	return &Indexer{
		store:     store,
		embedder:  embedder,
		ChunkSize: defaultChunkSize,
		Overlap:   defaultOverlap,
	}
}

// IndexDir scans dir for .md and .txt rule documents and indexes them.
func (ix *Indexer) IndexDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read rules dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".md" && ext != ".txt" {
			continue
		}
		if err := ix.indexFile(ctx, dir, entry.Name()); err != nil {
			return fmt.Errorf("index %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (ix *Indexer) indexFile(ctx context.Context, dir, name string) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	stored, err := ix.store.SourceHash(name)
	if err != nil {
		return err
	}
	if stored == hash {
		return nil
	}

	parts := splitChunks(string(data), ix.ChunkSize, ix.Overlap)
	if len(parts) == 0 {
		return ix.store.ReplaceSource(name, hash, nil)
	}

	embeddings, err := ix.embedder.Embed(ctx, parts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(parts) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(parts))
	}

	chunks := make([]Chunk, len(parts))
	for i, content := range parts {
		chunks[i] = Chunk{
			ID:        uuid.NewString(),
			Source:    name,
			Seq:       i,
			Content:   content,
			Embedding: embeddings[i],
		}
	}
	if err := ix.store.ReplaceSource(name, hash, chunks); err != nil {
		return err
	}
	log.Printf("Indexed %s (%d chunks)", name, len(chunks))
	return nil
}

// splitChunks breaks text into roughly size-limited chunks along
// paragraph boundaries. The trailing paragraph of a chunk is carried
// into the next one when it is short enough, so context spans chunk
// borders.
func splitChunks(text string, size, overlap int) []string {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}

	var chunks []string
	var cur []string
	curLen := 0
	for _, p := range paras {
		if curLen > 0 && curLen+len(p) > size {
			chunks = append(chunks, strings.Join(cur, "\n\n"))
			if last := cur[len(cur)-1]; len(last) <= overlap {
				cur = []string{last, p}
				curLen = len(last) + len(p)
			} else {
				cur = []string{p}
				curLen = len(p)
			}
			continue
		}
		cur = append(cur, p)
		curLen += len(p)
	}
	if curLen > 0 {
		chunks = append(chunks, strings.Join(cur, "\n\n"))
	}
	return chunks
}

// cosine similarity between two vectors; zero when lengths differ or
// either vector is all zeros.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / math.Sqrt(na*nb)
}
