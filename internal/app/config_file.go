package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Duration accepts either Go duration strings ("336h") or raw nanosecond
// integers in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if v, err := time.ParseDuration(s); err == nil {
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// FileConfig is the optional single-file configuration schema. Values from
// the file fill only fields the flags and environment left unset, so the
// precedence is flags/env first, file second, built-in defaults last.
type FileConfig struct {
	BaseURL   string   `yaml:"baseURL"`
	Tags      []string `yaml:"tags"`
	DataDir   string   `yaml:"dataDir"`
	MaxAge    Duration `yaml:"maxAge"`
	UserAgent string   `yaml:"userAgent"`

	GeneratedDir string `yaml:"generatedDir"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		Key     string `yaml:"key"`
	} `yaml:"llm"`

	Author    string `yaml:"author"`
	EnablePDF bool   `yaml:"enablePDF"`
	Verbose   bool   `yaml:"verbose"`
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &fc, nil
}

// Apply copies file values into cfg wherever cfg has no value yet.
func (fc *FileConfig) Apply(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = fc.BaseURL
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = fc.Tags
	}
	if cfg.DataDir == "" {
		cfg.DataDir = fc.DataDir
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = time.Duration(fc.MaxAge)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.UserAgent
	}
	if cfg.GeneratedDir == "" {
		cfg.GeneratedDir = fc.GeneratedDir
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.Key
	}
	if cfg.Author == "" {
		cfg.Author = fc.Author
	}
	if fc.EnablePDF {
		cfg.EnablePDF = true
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
