package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestResolverEmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if resolver.HasCustomLoader() {
		t.Error("HasCustomLoader() = true, want false")
	}

	if _, err := resolver.LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle() error = %v", err)
	}
	if _, err := resolver.LoadTemplateSet(DefaultTemplateSetName); err != nil {
		t.Errorf("LoadTemplateSet() error = %v", err)
	}
}

func TestResolverInvalidBasePath(t *testing.T) {
	t.Parallel()

	if _, err := NewAssetResolver("/nonexistent/assets/dir"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
	}
}

func TestResolverCustomFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles/default.css", "/* custom override */")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if !resolver.HasCustomLoader() {
		t.Error("HasCustomLoader() = false, want true")
	}

	content, err := resolver.LoadStyle("default")
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if content != "/* custom override */" {
		t.Errorf("LoadStyle() = %q, want custom override", content)
	}
}

func TestResolverFallbackToEmbedded(t *testing.T) {
	t.Parallel()

	// Custom dir has no styles: embedded defaults still resolve.
	resolver, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	content, err := resolver.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if !strings.Contains(content, "body") {
		t.Error("LoadStyle() fallback returned unexpected content")
	}

	ts, err := resolver.LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	if ts.Document == "" {
		t.Error("LoadTemplateSet() fallback returned empty document template")
	}
}

func TestResolverDoesNotFallBackOnIncompleteSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "templates/default/document.html", "<html></html>")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	// An incomplete custom set is an error, not a silent fallback.
	if _, err := resolver.LoadTemplateSet("default"); !errors.Is(err, ErrIncompleteTemplateSet) {
		t.Errorf("LoadTemplateSet() error = %v, want ErrIncompleteTemplateSet", err)
	}
}
