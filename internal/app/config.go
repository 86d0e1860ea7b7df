package app

import "time"

// DefaultTags is the fixed set of source-site tags the scraper walks.
var DefaultTags = []string{
	"sales-and-marketing",
	"crm",
	"product-update",
	"grant",
	"product-support",
}

// DefaultMaxAge is the staleness window: listing posts older than this are
// not scraped, and since listings are reverse-chronological the first stale
// post ends the whole tag.
const DefaultMaxAge = 14 * 24 * time.Hour

// Config holds runtime configuration for both pipeline stages.
type Config struct {
	// Scrape
	BaseURL   string
	Tags      []string
	DataDir   string
	MaxAge    time.Duration
	UserAgent string

	// Generate
	GeneratedDir string
	LLMBaseURL   string
	LLMModel     string
	LLMAPIKey    string
	Author       string
	EnablePDF    bool

	Verbose bool
}
