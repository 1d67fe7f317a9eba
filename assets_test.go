package xml2doc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetLoaderEmbedded(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if !strings.Contains(css, ".document-title") {
		t.Error("default style missing document-title rule")
	}

	ts, err := loader.LoadTemplateSet(DefaultTemplateSet)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	if ts.Document == "" || ts.Navigation == "" {
		t.Error("default template set should have both templates")
	}
}

func TestNewAssetLoaderStyleNotFound(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	_, err = loader.LoadStyle("missing")
	if !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("error = %v, want ErrStyleNotFound", err)
	}
}

func TestNewAssetLoaderInvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewAssetLoaderCustomStyleWins(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	stylesDir := filepath.Join(base, "styles")
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	customCSS := "body { background: papayawhip; }"
	if err := os.WriteFile(filepath.Join(stylesDir, "default.css"), []byte(customCSS), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := NewAssetLoader(base)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	css, err := loader.LoadStyle("default")
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if css != customCSS {
		t.Errorf("LoadStyle() = %q, want custom override", css)
	}

	// Templates fall back to embedded defaults
	ts, err := loader.LoadTemplateSet("default")
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	if ts.Document == "" {
		t.Error("expected embedded fallback for template set")
	}
}

func TestNewTemplateSet(t *testing.T) {
	t.Parallel()

	ts := NewTemplateSet("custom", "<html>{{.Body}}</html>", "<nav></nav>")
	if ts.Name != "custom" {
		t.Errorf("Name = %q, want custom", ts.Name)
	}
	if ts.Document == "" || ts.Navigation == "" {
		t.Error("templates should be stored as given")
	}
}

func TestWrappedAssetErrorPreservesMessage(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	_, err = loader.LoadStyle("missing")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error message %q should mention the style name", err.Error())
	}
}

func TestConverterWithAssetLoader(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	conv, _ := newTestConverter(t, WithAssetLoader(loader), WithStyle("compact"))
	if conv.cfg.resolvedStyle == "" {
		t.Error("expected style resolved through the injected loader")
	}
}
