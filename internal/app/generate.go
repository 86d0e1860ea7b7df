package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/voltade/blogpipe/internal/llm"
	"github.com/voltade/blogpipe/internal/manifest"
	"github.com/voltade/blogpipe/internal/prompt"
	"github.com/voltade/blogpipe/internal/rewrite"
)

// ErrNoManifest is returned when the generation stage starts without a
// manifest on disk. Per the exit code policy this is the one condition that
// yields a non-zero process exit.
var ErrNoManifest = errors.New("no manifest found, run the scraper first")

// GenerateStage rewrites every pending manifest entry through the LLM and
// records completion state back into the manifest, one read-modify-write
// cycle per entry. A single entry's failure never aborts the batch.
type GenerateStage struct {
	cfg      Config
	store    *manifest.Store
	rewriter *rewrite.Rewriter
}

// NewGenerate builds the stage with an OpenAI-compatible client from the
// configuration.
func NewGenerate(cfg Config) *GenerateStage {
	return &GenerateStage{
		cfg:   cfg,
		store: &manifest.Store{Path: filepath.Join(cfg.DataDir, "manifest.json")},
		rewriter: &rewrite.Rewriter{
			Client: llm.New(cfg.LLMAPIKey, cfg.LLMBaseURL),
			Model:  cfg.LLMModel,
			Author: cfg.Author,
		},
	}
}

// WithClient substitutes the chat client, primarily for tests.
func (g *GenerateStage) WithClient(c llm.Client) *GenerateStage {
	g.rewriter.Client = c
	return g
}

// Run selects entries not yet generated and processes them in assignment
// order. Absent manifest is fatal before any work; zero pending entries is
// a successful no-op.
func (g *GenerateStage) Run(ctx context.Context) error {
	if !g.store.Exists() {
		return ErrNoManifest
	}
	m, err := g.store.Load()
	if err != nil {
		return err
	}
	log.Info().Int("total_posts", m.TotalPosts).Msg("manifest loaded")

	pending := m.PendingIDs()
	if len(pending) == 0 {
		log.Info().Msg("all posts have been generated")
		return nil
	}
	log.Info().Int("pending", len(pending)).Msg("posts to generate")

	for _, id := range pending {
		g.generateOne(ctx, id, m.Posts[id])
	}
	log.Info().Msg("blog generation complete")
	return nil
}

// generateOne rewrites a single entry. Every failure path logs and returns,
// leaving the entry pending for a later run.
func (g *GenerateStage) generateOne(ctx context.Context, id string, e *manifest.Entry) {
	log.Info().Str("id", id).Str("title", e.Title).Msg("processing post")

	contentPath := filepath.Join(g.cfg.DataDir, e.Category, e.Filename)
	content, err := os.ReadFile(contentPath)
	if err != nil {
		log.Warn().Err(err).Str("id", id).Str("path", contentPath).Msg("content file not found")
		return
	}

	generated, err := g.rewriter.Rewrite(ctx, string(content), e.Title, e.Category)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("rewrite failed")
		return
	}

	generatedName := e.Filename + ".md"
	outDir := filepath.Join(g.cfg.GeneratedDir, e.Category)
	outPath := filepath.Join(outDir, generatedName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Error().Err(err).Str("id", id).Msg("create output dir failed")
		return
	}
	if err := os.WriteFile(outPath, []byte(generated), 0o644); err != nil {
		log.Error().Err(err).Str("id", id).Msg("write generated post failed")
		return
	}
	if g.cfg.EnablePDF {
		// Best effort: the Markdown file is the deliverable.
		if err := writePDF(generated, outPath+".pdf"); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("pdf render failed")
		}
	}

	// Reload before mutating so a concurrent scrape's additions are not
	// clobbered more than whole-file overwrite already implies.
	m, err := g.store.Load()
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("reload manifest failed")
		return
	}
	if !m.MarkGenerated(id, generatedName, prompt.WordCount(generated)) {
		log.Error().Str("id", id).Msg("manifest entry missing, not updated")
		return
	}
	if err := g.store.Save(m); err != nil {
		log.Error().Err(err).Str("id", id).Msg("save manifest failed")
		return
	}
	log.Info().Str("id", id).Str("out", outPath).Msg("generated and saved")
}
