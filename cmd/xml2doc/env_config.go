package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-xml2doc/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // XML2DOC_CONFIG: config file path
	Style      string        // XML2DOC_STYLE: style name or path
	Timeout    time.Duration // XML2DOC_TIMEOUT: PDF generation timeout

	// Tier 2 - I/O
	InputDir  string // XML2DOC_INPUT_DIR: default input directory
	OutputDir string // XML2DOC_OUTPUT_DIR: default output directory
	Formats   string // XML2DOC_FORMATS: comma-separated format list

	// Tier 3 - Extended
	PageSize string // XML2DOC_PAGE_SIZE: a4, letter, legal
	Lang     string // XML2DOC_LANG: html lang attribute
	Workers  int    // XML2DOC_WORKERS: parallel workers
}

// knownEnvVars lists valid XML2DOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"XML2DOC_CONFIG":  true,
	"XML2DOC_STYLE":   true,
	"XML2DOC_TIMEOUT": true,
	// Tier 2 - I/O
	"XML2DOC_INPUT_DIR":  true,
	"XML2DOC_OUTPUT_DIR": true,
	"XML2DOC_FORMATS":    true,
	// Tier 3 - Extended
	"XML2DOC_PAGE_SIZE": true,
	"XML2DOC_LANG":      true,
	"XML2DOC_WORKERS":   true,
	// Recognized but handled elsewhere
	"XML2DOC_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized XML2DOC_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("XML2DOC_CONFIG"),
		Style:      os.Getenv("XML2DOC_STYLE"),
		// Tier 2
		InputDir:  os.Getenv("XML2DOC_INPUT_DIR"),
		OutputDir: os.Getenv("XML2DOC_OUTPUT_DIR"),
		Formats:   os.Getenv("XML2DOC_FORMATS"),
		// Tier 3
		PageSize: os.Getenv("XML2DOC_PAGE_SIZE"),
		Lang:     os.Getenv("XML2DOC_LANG"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("XML2DOC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("XML2DOC_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized XML2DOC_* variables.
// Helps catch typos like XML2DOC_FROMATS instead of XML2DOC_FORMATS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "XML2DOC_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Style (timeout handled separately in resolveTimeout)
	if env.Style != "" && cfg.Style.Name == "" {
		cfg.Style.Name = env.Style
	}

	// Tier 2 - I/O
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Formats != "" && len(cfg.Formats) == 0 {
		for _, f := range strings.Split(env.Formats, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.Formats = append(cfg.Formats, f)
			}
		}
	}

	// Tier 3 - Extended
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Lang != "" && cfg.Document.Lang == "" {
		cfg.Document.Lang = env.Lang
	}
}
