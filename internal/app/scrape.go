package app

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voltade/blogpipe/internal/extract"
	"github.com/voltade/blogpipe/internal/fetch"
	"github.com/voltade/blogpipe/internal/manifest"
	"github.com/voltade/blogpipe/internal/prompt"
)

// ScrapeStage walks each configured tag listing, stops at the first post
// older than the staleness window, and persists every fresh article as a
// flattened text file plus a manifest entry.
//
// A post is skipped only when the manifest already tracks it AND its text
// file is still on disk. If the file was deleted, the post is re-scraped
// and appended under a new id, duplicating the manifest entry; that matches
// the historical behavior and is deliberate until product says otherwise.
type ScrapeStage struct {
	cfg     Config
	base    *url.URL
	fetcher *fetch.Client
	store   *manifest.Store

	// now is swapped in tests to pin the staleness cutoff.
	now func() time.Time
}

// NewScrape validates the configuration and builds the stage.
func NewScrape(cfg Config) (*ScrapeStage, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %q", cfg.BaseURL)
	}
	return &ScrapeStage{
		cfg:     cfg,
		base:    base,
		fetcher: &fetch.Client{UserAgent: cfg.UserAgent},
		store:   &manifest.Store{Path: filepath.Join(cfg.DataDir, "manifest.json")},
		now:     time.Now,
	}, nil
}

// Run processes every configured tag sequentially. Failures are recovered
// at tag granularity: a broken listing or article aborts the remainder of
// that tag and moves on to the next.
func (s *ScrapeStage) Run(ctx context.Context) error {
	maxAge := s.cfg.MaxAge
	if maxAge == 0 {
		maxAge = DefaultMaxAge
	}
	for _, tag := range s.cfg.Tags {
		log.Info().Str("tag", tag).Msg("scraping tag listing")
		if err := s.runTag(ctx, tag, s.now().Add(-maxAge)); err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("tag aborted")
		}
	}
	return nil
}

func (s *ScrapeStage) runTag(ctx context.Context, tag string, cutoff time.Time) error {
	listingURL := s.base.ResolveReference(&url.URL{Path: "/tag/" + tag + "/"}).String()
	body, _, err := s.fetcher.Get(ctx, listingURL)
	if err != nil {
		return fmt.Errorf("fetch listing: %w", err)
	}
	summaries, err := extract.ParseListing(body, s.base)
	if err != nil {
		return fmt.Errorf("parse listing: %w", err)
	}

	// Listings are reverse-chronological: the first stale post ends the tag.
	for _, sum := range summaries {
		if sum.Published.Before(cutoff) {
			log.Debug().Str("url", sum.Link).Time("published", sum.Published).
				Msg("post older than staleness window, stopping tag")
			break
		}

		page, _, err := s.fetcher.Get(ctx, sum.Link)
		if err != nil {
			return fmt.Errorf("fetch post %s: %w", sum.Link, err)
		}
		art, err := extract.ExtractArticle(page, sum.Link, tag)
		if err != nil {
			return fmt.Errorf("extract post %s: %w", sum.Link, err)
		}

		if err := s.processArticle(art, tag); err != nil {
			log.Error().Err(err).Str("url", sum.Link).Msg("persisting post failed")
		}
	}
	return nil
}

// processArticle performs the per-item read-modify-write cycle against the
// manifest: dedup check, text file write, entry append, whole-file save.
func (s *ScrapeStage) processArticle(art *extract.Article, tag string) error {
	m, err := s.store.Load()
	if err != nil {
		return err
	}

	filename := manifest.CleanTitle(art.Title) + ".txt"
	path := filepath.Join(s.cfg.DataDir, tag, filename)

	if id, ok := m.Lookup(art.URL, art.Title); ok {
		if _, statErr := os.Stat(path); statErr == nil {
			log.Info().Str("id", id).Str("title", art.Title).
				Str("scraped", m.Posts[id].ScrapedDate).Msg("post already scraped, skipping")
			return nil
		}
	}

	text := prompt.Flatten(art)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write content: %w", err)
	}

	id := m.Add(manifest.Entry{
		Title:         art.Title,
		Description:   art.Description,
		Category:      art.Category,
		Filename:      filename,
		SourceURL:     art.URL,
		WordCount:     prompt.WordCount(text),
		SectionsCount: len(art.Sections),
	})
	if err := s.store.Save(m); err != nil {
		return err
	}

	log.Info().Str("id", id).Str("title", art.Title).Str("file", filename).
		Int("words", m.Posts[id].WordCount).Int("sections", m.Posts[id].SectionsCount).
		Msg("new post scraped")
	log.Info().Int("total_posts", m.TotalPosts).Str("manifest", s.store.Path).Msg("manifest updated")
	return nil
}
