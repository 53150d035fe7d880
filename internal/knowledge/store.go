package knowledge

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Chunk is one indexed slice of rule text with its embedding vector.
type Chunk struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Seq       int       `json:"seq"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"-"`
}

// Store persists rule-text chunks and their embeddings in sqlite.
// Embeddings are stored as JSON float arrays.
type Store struct {
	db *sql.DB
	m  *sync.Mutex
}

// New opens (or creates) the chunk database at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open knowledge db: %w", err)
	}

	sqlStmt := `
	create table if not exists chunks (
		id string not null primary key,
		source string not null,
		seq integer not null,
		content string not null,
		embedding string not null
	);
	create table if not exists sources (
		source string not null primary key,
		hash string not null
	);
	`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("create knowledge tables: %w", err)
	}

	return &Store{db: db, m: &sync.Mutex{}}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SourceHash returns the stored content hash for a source, or "" when
// the source has never been indexed.
func (s *Store) SourceHash(source string) (string, error) {
	s.m.Lock()
	defer s.m.Unlock()
	var hash string
	err := s.db.QueryRow("SELECT hash FROM sources WHERE source = ?", source).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// ReplaceSource atomically swaps all chunks of a source and records its
// content hash.
func (s *Store) ReplaceSource(source, hash string, chunks []Chunk) error {
	s.m.Lock()
	defer s.m.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM chunks WHERE source = ?", source); err != nil {
		return err
	}
	for _, c := range chunks {
		embedding, err := json.Marshal(c.Embedding)
		if err != nil {
			return err
		}
		_, err = tx.Exec("INSERT INTO chunks (id, source, seq, content, embedding) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Source, c.Seq, c.Content, string(embedding))
		if err != nil {
			return err
		}
	}
	_, err = tx.Exec("INSERT INTO sources (source, hash) VALUES (?, ?) ON CONFLICT(source) DO UPDATE SET hash = excluded.hash",
		source, hash)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// AllChunks returns every stored chunk with its embedding decoded.
func (s *Store) AllChunks() ([]Chunk, error) {
	s.m.Lock()
	defer s.m.Unlock()

	rows, err := s.db.Query("SELECT id, source, seq, content, embedding FROM chunks ORDER BY source, seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		var embedding string
		if err := rows.Scan(&c.ID, &c.Source, &c.Seq, &c.Content, &embedding); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(embedding), &c.Embedding); err != nil {
			return nil, fmt.Errorf("decode embedding for chunk %s: %w", c.ID, err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// Sources lists indexed source names.
func (s *Store) Sources() ([]string, error) {
	s.m.Lock()
	defer s.m.Unlock()

	rows, err := s.db.Query("SELECT source FROM sources ORDER BY source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// Search ranks all chunks by cosine similarity against the query
// embedding and returns the top k.
func (s *Store) Search(query []float32, k int) ([]Chunk, error) {
	chunks, err := s.AllChunks()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(chunks, func(i, j int) bool {
		return cosine(chunks[i].Embedding, query) > cosine(chunks[j].Embedding, query)
	})
	if len(chunks) > k {
		chunks = chunks[:k]
	}
	return chunks, nil
}
