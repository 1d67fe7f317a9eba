package main

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	xml2doc "github.com/alnah/go-xml2doc"
	"github.com/alnah/go-xml2doc/internal/config"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseConvertFlags([]string{
		"input.xml",
		"-o", "out",
		"-f", "html,pdf",
		"--toc",
		"--toc-depth", "2",
		"--page-size", "letter",
		"--footer-page-number",
		"--lang", "ja",
		"--markdown-text",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(positional) != 1 || positional[0] != "input.xml" {
		t.Errorf("positional = %v, want [input.xml]", positional)
	}
	if flags.output != "out" {
		t.Errorf("output = %q, want %q", flags.output, "out")
	}
	if want := []string{"html", "pdf"}; !reflect.DeepEqual(flags.formats, want) {
		t.Errorf("formats = %v, want %v", flags.formats, want)
	}
	if !flags.toc.enabled || flags.toc.maxDepth != 2 {
		t.Errorf("toc = %+v, want enabled with depth 2", flags.toc)
	}
	if flags.page.size != "letter" {
		t.Errorf("page.size = %q, want %q", flags.page.size, "letter")
	}
	if !flags.footer.pageNumber {
		t.Error("footer.pageNumber = false, want true")
	}
	if flags.document.lang != "ja" || !flags.document.markdownText {
		t.Errorf("document = %+v, want lang ja with markdownText", flags.document)
	}
}

func TestParseConvertFlagsUnknownFlag(t *testing.T) {
	t.Parallel()

	if _, _, err := parseConvertFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Page.Size = "a4"
	cfg.TOC.Enabled = true
	cfg.TOC.Title = "Contents"

	flags := &convertFlags{}
	flags.page.size = "letter"
	flags.footer.text = "Internal"
	flags.nav.enabled = true
	flags.backLink.url = "../index.html"
	flags.formats = []string{"docx"}

	mergeFlags(flags, cfg)

	if cfg.Page.Size != "letter" {
		t.Errorf("Page.Size = %q, want flag to win", cfg.Page.Size)
	}
	if !cfg.Footer.Enabled || cfg.Footer.Text != "Internal" {
		t.Errorf("Footer = %+v, want enabled with text", cfg.Footer)
	}
	if !cfg.Navigation.Enabled {
		t.Error("Navigation.Enabled = false, want true")
	}
	if !cfg.BackLink.Enabled || cfg.BackLink.URL != "../index.html" {
		t.Errorf("BackLink = %+v, want enabled with URL", cfg.BackLink)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"docx"}) {
		t.Errorf("Formats = %v, want [docx]", cfg.Formats)
	}
	if !cfg.TOC.Enabled || cfg.TOC.Title != "Contents" {
		t.Errorf("TOC = %+v, want config values kept", cfg.TOC)
	}
}

func TestMergeFlagsDisable(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Footer.Enabled = true
	cfg.TOC.Enabled = true
	cfg.Navigation.Enabled = true
	cfg.BackLink.Enabled = true
	cfg.BackLink.URL = "index.html"

	flags := &convertFlags{}
	flags.footer.disabled = true
	flags.toc.disabled = true
	flags.nav.disabled = true
	flags.backLink.disabled = true

	mergeFlags(flags, cfg)

	if cfg.Footer.Enabled || cfg.TOC.Enabled || cfg.Navigation.Enabled || cfg.BackLink.Enabled {
		t.Errorf("disable flags not applied: footer=%v toc=%v nav=%v backLink=%v",
			cfg.Footer.Enabled, cfg.TOC.Enabled, cfg.Navigation.Enabled, cfg.BackLink.Enabled)
	}
}

func TestResolveFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flags    func() *convertFlags
		cfg      func() *config.Config
		expected []string
	}{
		{
			name:     "default is pdf",
			flags:    func() *convertFlags { return &convertFlags{} },
			cfg:      config.DefaultConfig,
			expected: []string{"pdf"},
		},
		{
			name:  "html only wins over everything",
			flags: func() *convertFlags { f := &convertFlags{}; f.outputMode.htmlOnly = true; return f },
			cfg: func() *config.Config {
				c := config.DefaultConfig()
				c.Formats = []string{"pdf", "docx"}
				return c
			},
			expected: []string{"html"},
		},
		{
			name:  "html flag adds to formats",
			flags: func() *convertFlags { f := &convertFlags{}; f.outputMode.html = true; return f },
			cfg:   config.DefaultConfig,
			expected: []string{
				"html", "pdf",
			},
		},
		{
			name:  "duplicates and case folded",
			flags: func() *convertFlags { return &convertFlags{} },
			cfg: func() *config.Config {
				c := config.DefaultConfig()
				c.Formats = []string{"PDF", "pdf", " markdown "}
				return c
			},
			expected: []string{"pdf", "markdown"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resolveFormats(tt.flags(), tt.cfg())
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("resolveFormats() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if _, err := resolveInputPath(nil, cfg); !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}

	cfg.Input.DefaultDir = "docs"
	path, err := resolveInputPath(nil, cfg)
	if err != nil || path != "docs" {
		t.Errorf("resolveInputPath() = %q, %v, want docs from config", path, err)
	}

	path, err = resolveInputPath([]string{"law.xml"}, cfg)
	if err != nil || path != "law.xml" {
		t.Errorf("resolveInputPath() = %q, %v, want positional arg to win", path, err)
	}
}

func TestResolveOutputBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		expected     string
	}{
		{
			name:      "no output dir keeps input location",
			inputPath: filepath.Join("docs", "law.xml"),
			expected:  filepath.Join("docs", "law"),
		},
		{
			name:      "explicit file path trims extension",
			inputPath: "law.xml",
			outputDir: filepath.Join("out", "report.pdf"),
			expected:  filepath.Join("out", "report"),
		},
		{
			name:         "directory structure mirrored",
			inputPath:    filepath.Join("docs", "civil", "law.xml"),
			outputDir:    "out",
			baseInputDir: "docs",
			expected:     filepath.Join("out", "civil", "law"),
		},
		{
			name:      "flat output dir",
			inputPath: filepath.Join("docs", "law.xml"),
			outputDir: "out",
			expected:  filepath.Join("out", "law"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resolveOutputBase(tt.inputPath, tt.outputDir, tt.baseInputDir)
			if got != tt.expected {
				t.Errorf("resolveOutputBase() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidateXMLExtension(t *testing.T) {
	t.Parallel()

	if err := validateXMLExtension("law.xml"); err != nil {
		t.Errorf("unexpected error for .xml: %v", err)
	}
	if err := validateXMLExtension("law.md"); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("error = %v, want ErrInvalidExtension", err)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"zero means auto", 0, false},
		{"valid count", 4, false},
		{"max allowed", xml2doc.MaxPoolSize, false},
		{"negative", -1, true},
		{"above max", xml2doc.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateWorkers(tt.workers)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.workers, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
			}
		})
	}
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	d, err := resolveTimeout("45s", 0)
	if err != nil || d != 45*time.Second {
		t.Errorf("resolveTimeout(45s) = %v, %v", d, err)
	}

	d, err = resolveTimeout("", 2*time.Minute)
	if err != nil || d != 2*time.Minute {
		t.Errorf("resolveTimeout with env fallback = %v, %v", d, err)
	}

	if _, err := resolveTimeout("banana", 0); !errors.Is(err, ErrInvalidTimeout) {
		t.Errorf("error = %v, want ErrInvalidTimeout", err)
	}
	if _, err := resolveTimeout("-5s", 0); !errors.Is(err, ErrInvalidTimeout) {
		t.Errorf("error = %v, want ErrInvalidTimeout for negative", err)
	}
}

func TestBuildConverterOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Style.Name = "compact"
	cfg.Document.Lang = "ja"
	cfg.Document.MarkdownText = true

	opts, err := buildConverterOptions(cfg, 30*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// timeout, style, lang, markdown text
	if len(opts) != 4 {
		t.Errorf("len(opts) = %d, want 4", len(opts))
	}
}

func TestBuildConverterOptionsBadAssetPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Assets.BasePath = filepath.Join(t.TempDir(), "does-not-exist")
	cfg.Assets.Template = "custom"

	if _, err := buildConverterOptions(cfg, 0); !errors.Is(err, xml2doc.ErrInvalidAssetPath) {
		t.Errorf("error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestBuildFooterData(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if buildFooterData(cfg) != nil {
		t.Error("expected nil footer when disabled")
	}

	cfg.Footer.Enabled = true
	cfg.Footer.Position = "center"
	cfg.Footer.ShowPageNumber = true
	cfg.Footer.Date = "2025-03-14"

	f := buildFooterData(cfg)
	if f == nil {
		t.Fatal("expected footer")
	}
	if f.Position != "center" || !f.ShowPageNumber || f.Date != "2025-03-14" {
		t.Errorf("footer = %+v", f)
	}
}

func TestBuildTOCData(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if buildTOCData(cfg) != nil {
		t.Error("expected nil TOC when disabled")
	}

	cfg.TOC.Enabled = true
	toc := buildTOCData(cfg)
	if toc == nil || toc.MaxDepth != xml2doc.DefaultTOCMaxDepth {
		t.Errorf("toc = %+v, want default depth", toc)
	}

	cfg.TOC.MaxDepth = 1
	if got := buildTOCData(cfg).MaxDepth; got != 1 {
		t.Errorf("MaxDepth = %d, want 1", got)
	}
}

func TestBuildPageSettings(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if buildPageSettings(cfg) != nil {
		t.Error("expected nil page settings when nothing set")
	}

	cfg.Page.Size = "legal"
	ps := buildPageSettings(cfg)
	if ps == nil || ps.Size != "legal" {
		t.Errorf("page = %+v", ps)
	}
}
