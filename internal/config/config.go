// Package config loads and validates YAML configuration for the CLI.
// A config can be referenced by name (resolved in standard locations) or
// by path, and merges with command-line flags at a higher layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-xml2doc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxTitleLength       = 200  // Document or TOC title
	MaxURLLength         = 2048 // Browser limit
	MaxLabelLength       = 100  // Link label
	MaxDateLength        = 30   // "2025-12-31" or "auto:MMMM D, YYYY"
	MaxTextLength        = 500  // Footer free-form text
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxLangLength        = 35   // BCP 47 upper bound
	MaxFormatNameLength  = 30   // Registered format name
)

// Config holds all configuration for document generation.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Style      StyleConfig      `yaml:"style"`
	Assets     AssetsConfig     `yaml:"assets"`
	Document   DocumentConfig   `yaml:"document"`
	Page       PageConfig       `yaml:"page"`
	Footer     FooterConfig     `yaml:"footer"`
	TOC        TOCConfig        `yaml:"toc"`
	Navigation NavigationConfig `yaml:"navigation"`
	BackLink   BackLinkConfig   `yaml:"backLink"`
	Formats    []string         `yaml:"formats"` // output formats (default: pdf)
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	IndexPage  bool   `yaml:"indexPage"`  // Generate an index page for directory conversion
}

// StyleConfig defines CSS styling options.
type StyleConfig struct {
	Name string `yaml:"name"` // Style name, file path, or inline CSS (empty = default)
	CSS  string `yaml:"css"`  // Extra CSS appended after the style
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Template string `yaml:"template"` // Template set name (empty = default)
}

// DocumentConfig defines document rendering options.
type DocumentConfig struct {
	Lang           string `yaml:"lang"`           // html lang attribute (default: "en")
	MarkdownText   bool   `yaml:"markdownText"`   // Render element text as inline Markdown
	KeepNamespaces bool   `yaml:"keepNamespaces"` // Keep namespace prefixes on tags
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right" (default: "right")
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Date           string `yaml:"date"` // Literal, or "auto" / "auto:FORMAT"
	Text           string `yaml:"text"` // Optional free-form text
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`    // Empty = default heading
	MaxDepth int    `yaml:"maxDepth"` // 1-3, default 3
}

// NavigationConfig defines the fixed navigation panel.
type NavigationConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"` // Empty = default heading
}

// BackLinkConfig defines the back-to-index link.
type BackLinkConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Label   string `yaml:"label"`
}

// Validate checks field lengths to prevent abuse in multi-tenant scenarios.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("style.name", c.Style.Name, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.template", c.Assets.Template, MaxLabelLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.lang", c.Document.Lang, MaxLangLength); err != nil {
		return err
	}

	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}

	if err := validateFieldLength("footer.date", c.Footer.Date, MaxDateLength); err != nil {
		return err
	}
	if err := validateFieldLength("footer.text", c.Footer.Text, MaxTextLength); err != nil {
		return err
	}
	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
			// valid
		default:
			return fmt.Errorf("footer.position: invalid value %q (must be left, center, or right)", c.Footer.Position)
		}
	}

	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTitleLength); err != nil {
		return err
	}
	if c.TOC.Enabled && c.TOC.MaxDepth != 0 {
		if c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 3 {
			return fmt.Errorf("toc.maxDepth: must be between 1 and 3, got %d", c.TOC.MaxDepth)
		}
	}

	if err := validateFieldLength("navigation.title", c.Navigation.Title, MaxTitleLength); err != nil {
		return err
	}

	if c.BackLink.Enabled && c.BackLink.URL == "" {
		return fmt.Errorf("backLink.url: required when backLink is enabled")
	}
	if err := validateFieldLength("backLink.url", c.BackLink.URL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("backLink.label", c.BackLink.Label, MaxLabelLength); err != nil {
		return err
	}

	for i, f := range c.Formats {
		if err := validateFieldLength(fmt.Sprintf("formats[%d]", i), f, MaxFormatNameLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration with all features disabled.
func DefaultConfig() *Config {
	return &Config{
		Input:      InputConfig{DefaultDir: ""},
		Output:     OutputConfig{DefaultDir: ""},
		Style:      StyleConfig{},
		Assets:     AssetsConfig{},
		Document:   DocumentConfig{},
		Footer:     FooterConfig{Enabled: false},
		TOC:        TOCConfig{Enabled: false},
		Navigation: NavigationConfig{Enabled: false},
		BackLink:   BackLinkConfig{Enabled: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/xml2doc/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "xml2doc", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
