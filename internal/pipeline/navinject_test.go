package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const navTmpl = `<nav class="nav-panel">{{if .Title}}<div class="nav-title">{{.Title}}</div>{{end}}
{{range .Links}}<a href="{{.Href}}" class="nav-link">{{.Label}}</a>{{end}}</nav>`

func TestInjectNav(t *testing.T) {
	t.Parallel()

	inj, err := NewNavInjection(navTmpl)
	if err != nil {
		t.Fatalf("NewNavInjection() error = %v", err)
	}

	data := &NavData{
		Title: "Contents",
		Links: []NavLink{
			{Href: "#chapter-1", Label: "General Provisions"},
			{Href: "#chapter-2", Label: "Juridical Persons"},
		},
	}
	got, err := inj.InjectNav(context.Background(), "<html><body><p>doc</p></body></html>", data)
	if err != nil {
		t.Fatalf("InjectNav() error = %v", err)
	}

	for _, want := range []string{
		`<nav class="nav-panel">`,
		`<a href="#chapter-1" class="nav-link">General Provisions</a>`,
		`<a href="#chapter-2" class="nav-link">Juridical Persons</a>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("InjectNav() missing %q in %q", want, got)
		}
	}
	if strings.Index(got, "<nav") > strings.Index(got, "</body>") {
		t.Error("nav panel should be injected before </body>")
	}
}

func TestInjectNavNilData(t *testing.T) {
	t.Parallel()

	inj, err := NewNavInjection(navTmpl)
	if err != nil {
		t.Fatalf("NewNavInjection() error = %v", err)
	}

	html := "<html><body></body></html>"
	if got, _ := inj.InjectNav(context.Background(), html, nil); got != html {
		t.Error("InjectNav(nil) should return input unchanged")
	}
	if got, _ := inj.InjectNav(context.Background(), html, &NavData{}); got != html {
		t.Error("InjectNav() without links should return input unchanged")
	}
}

func TestInjectNavNoBody(t *testing.T) {
	t.Parallel()

	inj, err := NewNavInjection(navTmpl)
	if err != nil {
		t.Fatalf("NewNavInjection() error = %v", err)
	}

	got, err := inj.InjectNav(context.Background(), "<p>fragment</p>",
		&NavData{Links: []NavLink{{Href: "#a", Label: "A"}}})
	if err != nil {
		t.Fatalf("InjectNav() error = %v", err)
	}
	if !strings.HasPrefix(got, "<p>fragment</p>") || !strings.Contains(got, "<nav") {
		t.Errorf("InjectNav() = %q, want nav appended", got)
	}
}

func TestInjectNavEscapesLabels(t *testing.T) {
	t.Parallel()

	inj, err := NewNavInjection(navTmpl)
	if err != nil {
		t.Fatalf("NewNavInjection() error = %v", err)
	}

	got, err := inj.InjectNav(context.Background(), "<html><body></body></html>",
		&NavData{Links: []NavLink{{Href: "#a", Label: "<script>x</script>"}}})
	if err != nil {
		t.Fatalf("InjectNav() error = %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("InjectNav() = %q, labels must be escaped", got)
	}
}

func TestNewNavInjectionInvalidTemplate(t *testing.T) {
	t.Parallel()

	if _, err := NewNavInjection("{{.Unclosed"); err == nil {
		t.Error("NewNavInjection() should reject an invalid template")
	}
}

func TestInjectNavRenderError(t *testing.T) {
	t.Parallel()

	inj, err := NewNavInjection(`{{call .Missing}}`)
	if err != nil {
		t.Fatalf("NewNavInjection() error = %v", err)
	}

	_, err = inj.InjectNav(context.Background(), "<html><body></body></html>",
		&NavData{Links: []NavLink{{Href: "#a", Label: "A"}}})
	if !errors.Is(err, ErrNavRender) {
		t.Errorf("InjectNav() error = %v, want ErrNavRender", err)
	}
}

func TestInjectNavCancelled(t *testing.T) {
	t.Parallel()

	inj, err := NewNavInjection(navTmpl)
	if err != nil {
		t.Fatalf("NewNavInjection() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = inj.InjectNav(ctx, "<html></html>",
		&NavData{Links: []NavLink{{Href: "#a", Label: "A"}}})
	if err == nil {
		t.Error("InjectNav() with cancelled context should return an error")
	}
}
