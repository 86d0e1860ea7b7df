package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voltade/blogpipe/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load .env if present so the API key never has to live in source.
	_ = godotenv.Load()

	var (
		dataDir      string
		generatedDir string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		author       string
		enablePDF    bool
		configPath   string
		verbose      bool
	)

	flag.StringVar(&dataDir, "data", "", "Directory holding raw post text and the manifest")
	flag.StringVar(&generatedDir, "out", "", "Directory for generated blog documents")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", envOr("LLM_API_KEY", os.Getenv("OPENAI_API_KEY")), "API key for the completion endpoint")
	flag.StringVar(&author, "author", "", "Author byline for generated frontmatter")
	flag.BoolVar(&enablePDF, "enable.pdf", false, "Also render each generated post as a PDF")
	flag.StringVar(&configPath, "config", os.Getenv("BLOGPIPE_CONFIG"), "Optional YAML config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		DataDir:      dataDir,
		GeneratedDir: generatedDir,
		LLMBaseURL:   llmBaseURL,
		LLMModel:     llmModel,
		LLMAPIKey:    llmKey,
		Author:       author,
		EnablePDF:    enablePDF,
		Verbose:      verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file unusable")
			os.Exit(1)
		}
		fc.Apply(&cfg)
	}

	// Built-in defaults for whatever flags, env, and file left unset.
	if cfg.DataDir == "" {
		cfg.DataDir = "scrapped_data"
	}
	if cfg.GeneratedDir == "" {
		cfg.GeneratedDir = "generated_blogs"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4"
	}
	if cfg.Author == "" {
		cfg.Author = "Voltade Team"
	}

	if err := app.NewGenerate(cfg).Run(context.Background()); err != nil {
		// Only prerequisite failures reach here: a missing or unreadable
		// manifest before any work. Per-entry failures inside the batch
		// are logged and do not change the exit code.
		if errors.Is(err, app.ErrNoManifest) {
			log.Error().Err(err).Msg("nothing to do")
		} else {
			log.Error().Err(err).Msg("generation failed")
		}
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
