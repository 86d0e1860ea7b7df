package main

import (
	"context"
	"flag"
	"os"
	"strings"
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

	// Load .env if present; flags and process env still win.
	_ = godotenv.Load()

	var (
		baseURL    string
		tagsCSV    string
		dataDir    string
		maxAge     time.Duration
		userAgent  string
		configPath string
		verbose    bool
	)

	flag.StringVar(&baseURL, "base", os.Getenv("BLOG_BASE_URL"), "Blog base URL to scrape")
	flag.StringVar(&tagsCSV, "tags", "", "Comma-separated tag list (default: the built-in tag set)")
	flag.StringVar(&dataDir, "data", "", "Directory for raw post text and the manifest")
	flag.DurationVar(&maxAge, "maxAge", 0, "Skip posts published longer ago than this")
	flag.StringVar(&userAgent, "ua", "", "User-Agent for outgoing requests")
	flag.StringVar(&configPath, "config", os.Getenv("BLOGPIPE_CONFIG"), "Optional YAML config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		BaseURL:   baseURL,
		Tags:      splitCSV(tagsCSV),
		DataDir:   dataDir,
		MaxAge:    maxAge,
		UserAgent: userAgent,
		Verbose:   verbose,
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
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://blog.peppercloud.com"
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = app.DefaultTags
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "scrapped_data"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "blogpipe/1.0 (+https://github.com/voltade/blogpipe)"
	}

	stage, err := app.NewScrape(cfg)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}
	if err := stage.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("scrape failed")
		os.Exit(1)
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
