// Package manifest persists the pipeline's processing state: one JSON
// document tracking every scraped post, keyed by a sequentially assigned id.
// The document is the sole authority for de-duplication on the scrape side
// and for pending-work selection on the generation side.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Version is the static schema tag written into every manifest.
const Version = "1.0"

// ErrInvalid wraps parse failures so callers can distinguish a corrupt
// manifest from an absent one.
var ErrInvalid = errors.New("manifest: invalid document")

// timeNow is swapped in tests for deterministic timestamps.
var timeNow = time.Now

// Entry is one tracked post. Descriptive fields and the scrape metrics are
// immutable once assigned; only the generation fields are mutated later,
// and Generated flips false to true at most once.
type Entry struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Filename      string `json:"filename"`
	SourceURL     string `json:"source_url"`
	ScrapedDate   string `json:"scraped_date"`
	WordCount     int    `json:"word_count"`
	SectionsCount int    `json:"sections_count"`
	Status        string `json:"status"`
	Generated     bool   `json:"generated"`

	GeneratedDate      string `json:"generated_date,omitempty"`
	GeneratedFilename  string `json:"generated_filename,omitempty"`
	GeneratedWordCount int    `json:"generated_word_count,omitempty"`
}

// Manifest is the singleton state document. Ids are zero-padded, so the
// sorted key order produced by encoding/json equals assignment order and
// save/load round-trips keep posts in scrape order.
type Manifest struct {
	Version     string            `json:"version"`
	Created     string            `json:"created"`
	LastUpdated string            `json:"last_updated,omitempty"`
	TotalPosts  int               `json:"total_posts"`
	Posts       map[string]*Entry `json:"posts"`
}

// Lookup reports whether a candidate post is already tracked, matching by
// source URL or by the filename derived from its title. Either match alone
// counts, even when the other field differs.
func (m *Manifest) Lookup(sourceURL, title string) (string, bool) {
	filename := CleanTitle(title) + ".txt"
	for id, e := range m.Posts {
		if e.SourceURL == sourceURL || e.Filename == filename {
			return id, true
		}
	}
	return "", false
}

// Add assigns the next sequential id to the entry, stamps the scrape-time
// fields, and recomputes the totals. Ids count up from post_001 and are
// never reused because entries are never deleted. The caller persists.
func (m *Manifest) Add(e Entry) string {
	id := fmt.Sprintf("post_%03d", len(m.Posts)+1)
	now := timeNow().Format(time.RFC3339)

	e.ScrapedDate = now
	e.Status = "scraped"
	e.Generated = false
	m.Posts[id] = &e

	m.TotalPosts = len(m.Posts)
	m.LastUpdated = now
	return id
}

// MarkGenerated records a successful rewrite for the given entry. It returns
// false, mutating nothing, when the id is unknown.
func (m *Manifest) MarkGenerated(id, filename string, wordCount int) bool {
	e, ok := m.Posts[id]
	if !ok {
		return false
	}
	now := timeNow().Format(time.RFC3339)
	e.Generated = true
	e.GeneratedDate = now
	e.GeneratedFilename = filename
	e.GeneratedWordCount = wordCount
	m.LastUpdated = now
	return true
}

// PendingIDs returns the ids still awaiting generation, in assignment order.
func (m *Manifest) PendingIDs() []string {
	var ids []string
	for id, e := range m.Posts {
		if !e.Generated {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Store reads and writes one manifest document as a whole file. There is no
// locking: concurrent writers against the same path are last-writer-wins.
type Store struct {
	Path string
}

// Exists reports whether a manifest file is present at the store's path.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads the manifest, synthesizing a fresh empty document when the
// file does not exist. A file that exists but fails to parse returns an
// error wrapping ErrInvalid.
func (s *Store) Load() (*Manifest, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{
				Version: Version,
				Created: timeNow().Format(time.RFC3339),
				Posts:   map[string]*Entry{},
			}, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if m.Posts == nil {
		m.Posts = map[string]*Entry{}
	}
	return &m, nil
}

// Save overwrites the document in full, pretty-printed. HTML escaping is
// disabled so non-ASCII titles and ampersands survive unescaped.
func (s *Store) Save(m *Manifest) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create manifest dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
