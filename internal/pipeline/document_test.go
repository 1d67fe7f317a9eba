package pipeline

import (
	"context"
	"html/template"
	"strings"
	"testing"
)

const docTmpl = `<!DOCTYPE html>
<html lang="{{.Lang}}"><head><title>{{.Title}}</title></head>
<body>{{if .BackLink}}<a href="{{.BackLink.Href}}" class="back-link">{{.BackLink.Label}}</a>{{end}}
{{if .Meta}}<div class="document-meta">{{.Meta}}</div>{{end}}
<span data-toc-slot></span>
{{.Body}}</body></html>`

func TestDocumentRender(t *testing.T) {
	t.Parallel()

	r, err := NewDocumentRenderer(docTmpl)
	if err != nil {
		t.Fatalf("NewDocumentRenderer() error = %v", err)
	}

	got, err := r.Render(context.Background(), &DocumentData{
		Title:    "Civil Code",
		Meta:     "Era: Meiji | Year: 29",
		BackLink: &BackLinkData{Href: "index.html", Label: "Back to index"},
		Body:     template.HTML(`<div class="chapter">body</div>`),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		`<html lang="en">`,
		"<title>Civil Code</title>",
		`<a href="index.html" class="back-link">Back to index</a>`,
		`<div class="document-meta">Era: Meiji | Year: 29</div>`,
		`<div class="chapter">body</div>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
}

func TestDocumentRenderEscapesTitle(t *testing.T) {
	t.Parallel()

	r, err := NewDocumentRenderer(docTmpl)
	if err != nil {
		t.Fatalf("NewDocumentRenderer() error = %v", err)
	}

	got, err := r.Render(context.Background(), &DocumentData{Title: "<b>raw</b>"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(got, "<title><b>") {
		t.Errorf("Render() = %q, title must be escaped", got)
	}
}

func TestDocumentRenderLangOverride(t *testing.T) {
	t.Parallel()

	r, err := NewDocumentRenderer(docTmpl)
	if err != nil {
		t.Fatalf("NewDocumentRenderer() error = %v", err)
	}

	got, err := r.Render(context.Background(), &DocumentData{Lang: "ja", Title: "x"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, `<html lang="ja">`) {
		t.Errorf("Render() = %q, want ja lang attribute", got)
	}
}

func TestDocumentRenderCancelled(t *testing.T) {
	t.Parallel()

	r, err := NewDocumentRenderer(docTmpl)
	if err != nil {
		t.Fatalf("NewDocumentRenderer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, &DocumentData{Title: "x"}); err == nil {
		t.Error("Render() with cancelled context should return an error")
	}
}

func TestNewDocumentRendererInvalidTemplate(t *testing.T) {
	t.Parallel()

	if _, err := NewDocumentRenderer("{{.Bad"); err == nil {
		t.Error("NewDocumentRenderer() should reject an invalid template")
	}
}
