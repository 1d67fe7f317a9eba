package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-xml2doc/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("XML2DOC_CONFIG", "site.yaml")
	t.Setenv("XML2DOC_STYLE", "compact")
	t.Setenv("XML2DOC_TIMEOUT", "90s")
	t.Setenv("XML2DOC_INPUT_DIR", "docs")
	t.Setenv("XML2DOC_OUTPUT_DIR", "out")
	t.Setenv("XML2DOC_FORMATS", "html, pdf")
	t.Setenv("XML2DOC_PAGE_SIZE", "letter")
	t.Setenv("XML2DOC_LANG", "ja")
	t.Setenv("XML2DOC_WORKERS", "3")

	env := loadEnvConfig()

	if env.ConfigPath != "site.yaml" || env.Style != "compact" {
		t.Errorf("tier 1 = %+v", env)
	}
	if env.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", env.Timeout)
	}
	if env.InputDir != "docs" || env.OutputDir != "out" || env.Formats != "html, pdf" {
		t.Errorf("tier 2 = %+v", env)
	}
	if env.PageSize != "letter" || env.Lang != "ja" || env.Workers != 3 {
		t.Errorf("tier 3 = %+v", env)
	}
}

func TestLoadEnvConfigInvalidValues(t *testing.T) {
	t.Setenv("XML2DOC_TIMEOUT", "not-a-duration")
	t.Setenv("XML2DOC_WORKERS", "many")

	env := loadEnvConfig()
	if env.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 for invalid value", env.Timeout)
	}
	if env.Workers != 0 {
		t.Errorf("Workers = %d, want 0 for invalid value", env.Workers)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Style:     "compact",
		InputDir:  "docs",
		OutputDir: "out",
		Formats:   "html, docx",
		PageSize:  "letter",
		Lang:      "ja",
	}
	cfg := config.DefaultConfig()

	applyEnvConfig(env, cfg)

	if cfg.Style.Name != "compact" || cfg.Input.DefaultDir != "docs" || cfg.Output.DefaultDir != "out" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"html", "docx"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.Page.Size != "letter" || cfg.Document.Lang != "ja" {
		t.Errorf("page/lang = %q/%q", cfg.Page.Size, cfg.Document.Lang)
	}
}

func TestApplyEnvConfigDoesNotOverrideConfigFile(t *testing.T) {
	t.Parallel()

	env := &envConfig{Style: "compact", PageSize: "letter"}
	cfg := config.DefaultConfig()
	cfg.Style.Name = "corporate"
	cfg.Page.Size = "a4"

	applyEnvConfig(env, cfg)

	// Config file values win over env vars
	if cfg.Style.Name != "corporate" {
		t.Errorf("Style.Name = %q, want corporate", cfg.Style.Name)
	}
	if cfg.Page.Size != "a4" {
		t.Errorf("Page.Size = %q, want a4", cfg.Page.Size)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("XML2DOC_FROMATS", "pdf") // typo
	t.Setenv("XML2DOC_STYLE", "compact")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "XML2DOC_FROMATS") {
		t.Errorf("expected warning for typo, got %q", out)
	}
	if strings.Contains(out, "XML2DOC_STYLE") {
		t.Errorf("unexpected warning for known var: %q", out)
	}
}
