package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newEntry(n int) Entry {
	return Entry{
		Title:         fmt.Sprintf("Post %d", n),
		Description:   "desc",
		Category:      "crm",
		Filename:      fmt.Sprintf("Post_%d.txt", n),
		SourceURL:     fmt.Sprintf("https://blog.example.com/post-%d/", n),
		WordCount:     100,
		SectionsCount: 3,
	}
}

func TestAdd_AssignsSequentialIDsAndTotals(t *testing.T) {
	m := &Manifest{Version: Version, Posts: map[string]*Entry{}}

	for i := 1; i <= 3; i++ {
		id := m.Add(newEntry(i))
		want := fmt.Sprintf("post_%03d", i)
		if id != want {
			t.Fatalf("expected id %q, got %q", want, id)
		}
		if m.TotalPosts != len(m.Posts) {
			t.Fatalf("total_posts %d != len(posts) %d", m.TotalPosts, len(m.Posts))
		}
	}

	e := m.Posts["post_001"]
	if e.Status != "scraped" || e.Generated {
		t.Fatalf("new entry should be status=scraped, generated=false; got %q %v", e.Status, e.Generated)
	}
	if e.ScrapedDate == "" {
		t.Fatalf("expected scraped_date to be stamped")
	}
}

func TestAdd_IDsSurviveMutation(t *testing.T) {
	m := &Manifest{Version: Version, Posts: map[string]*Entry{}}
	first := m.Add(newEntry(1))
	if !m.MarkGenerated(first, "Post_1.txt.md", 50) {
		t.Fatalf("expected MarkGenerated to succeed for %s", first)
	}
	second := m.Add(newEntry(2))
	if second != "post_002" {
		t.Fatalf("expected post_002 after mutation, got %q", second)
	}
}

func TestLookup_MatchesBySourceURLDespiteDifferentTitle(t *testing.T) {
	m := &Manifest{Version: Version, Posts: map[string]*Entry{}}
	id := m.Add(newEntry(1))

	got, ok := m.Lookup("https://blog.example.com/post-1/", "A Completely Different Title")
	if !ok || got != id {
		t.Fatalf("expected URL match for %s, got (%q, %v)", id, got, ok)
	}
}

func TestLookup_MatchesByFilenameDespiteDifferentURL(t *testing.T) {
	m := &Manifest{Version: Version, Posts: map[string]*Entry{}}
	e := newEntry(1)
	e.Filename = CleanTitle("Post 1") + ".txt"
	id := m.Add(e)

	got, ok := m.Lookup("https://elsewhere.example.com/other/", "Post 1")
	if !ok || got != id {
		t.Fatalf("expected filename match for %s, got (%q, %v)", id, got, ok)
	}

	if _, ok := m.Lookup("https://elsewhere.example.com/other/", "Unknown"); ok {
		t.Fatalf("expected no match for unknown post")
	}
}

func TestMarkGenerated_UnknownID(t *testing.T) {
	m := &Manifest{Version: Version, Posts: map[string]*Entry{}}
	if m.MarkGenerated("post_999", "x.md", 1) {
		t.Fatalf("expected false for unknown id")
	}
}

func TestMarkGenerated_SetsCompletionFields(t *testing.T) {
	m := &Manifest{Version: Version, Posts: map[string]*Entry{}}
	id := m.Add(newEntry(1))

	if !m.MarkGenerated(id, "Post_1.txt.md", 42) {
		t.Fatalf("expected success")
	}
	e := m.Posts[id]
	if !e.Generated || e.GeneratedFilename != "Post_1.txt.md" || e.GeneratedWordCount != 42 {
		t.Fatalf("completion fields not set: %+v", e)
	}
	if e.GeneratedDate == "" {
		t.Fatalf("expected generated_date to be stamped")
	}
}

func TestPendingIDs_SelectsUngeneratedInOrder(t *testing.T) {
	m := &Manifest{Version: Version, Posts: map[string]*Entry{}}
	for i := 1; i <= 3; i++ {
		m.Add(newEntry(i))
	}
	m.MarkGenerated("post_002", "Post_2.txt.md", 10)

	got := m.PendingIDs()
	want := []string{"post_001", "post_003"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStore_LoadMissingSynthesizesFresh(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), "manifest.json")}
	m, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Version != Version || m.TotalPosts != 0 || len(m.Posts) != 0 {
		t.Fatalf("unexpected fresh manifest: %+v", m)
	}
	if m.Created == "" {
		t.Fatalf("expected created timestamp")
	}
	if s.Exists() {
		t.Fatalf("Load must not create the file")
	}
}

func TestStore_LoadCorruptReturnsErrInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := &Store{Path: path}
	if _, err := s.Load(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestStore_RoundTripPreservesDocument(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), "manifest.json")}
	m, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	e := newEntry(1)
	e.Title = "Ständig & Søt — CRM 指南"
	m.Add(e)
	m.Add(newEntry(2))

	if err := s.Save(m); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), `\u0026`) {
		t.Fatalf("ampersand must not be escaped in saved manifest")
	}
	if !strings.Contains(string(raw), "Ständig & Søt") {
		t.Fatalf("literal ampersand should survive in saved manifest")
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(m, got) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", m, got)
	}

	// Zero-padded ids keep the serialized map in assignment order.
	if i1, i2 := strings.Index(string(raw), "post_001"), strings.Index(string(raw), "post_002"); i1 < 0 || i2 < 0 || i1 > i2 {
		t.Fatalf("expected post_001 before post_002 in output (%d, %d)", i1, i2)
	}
}
