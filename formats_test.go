package xml2doc

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestFormats(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	got := conv.Formats()
	want := []string{"docx", "html", "markdown", "pdf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestFormatExtension(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	tests := []struct {
		format string
		want   string
	}{
		{"html", "html"},
		{"pdf", "pdf"},
		{"markdown", "md"},
		{"docx", "docx"},
		{"MARKDOWN", "md"}, // case-insensitive lookup
	}

	for _, tt := range tests {
		got, err := conv.FormatExtension(tt.format)
		if err != nil {
			t.Errorf("FormatExtension(%q) error = %v", tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatExtension(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}

	if _, err := conv.FormatExtension("pptx"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestConvertToHTML(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	out, err := conv.ConvertTo(context.Background(), Input{XML: []byte(sampleXML)}, "html")
	if err != nil {
		t.Fatalf("ConvertTo() error = %v", err)
	}
	if !strings.Contains(string(out), `<div class="document-title">Civil Code</div>`) {
		t.Error("HTML output missing document title")
	}
}

func TestConvertToPDF(t *testing.T) {
	t.Parallel()

	conv, mock := newTestConverter(t)
	mock.output = []byte("%PDF-1.4 test")

	out, err := conv.ConvertTo(context.Background(), Input{XML: []byte(sampleXML)}, "pdf")
	if err != nil {
		t.Fatalf("ConvertTo() error = %v", err)
	}
	if string(out) != "%PDF-1.4 test" {
		t.Errorf("output = %q, want mock PDF", out)
	}
}

func TestConvertToMarkdown(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	out, err := conv.ConvertTo(context.Background(), Input{XML: []byte(sampleXML)}, "markdown")
	if err != nil {
		t.Fatalf("ConvertTo() error = %v", err)
	}

	md := string(out)
	if !strings.Contains(md, "Civil Code") {
		t.Error("markdown output missing document title")
	}
	if !strings.Contains(md, "Private rights must conform to the public welfare.") {
		t.Error("markdown output missing sentence text")
	}
	if strings.Contains(md, "<div") {
		t.Error("markdown output should not contain raw div tags")
	}
}

func TestConvertToDocx(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	out, err := conv.ConvertTo(context.Background(), Input{XML: []byte(sampleXML)}, "docx")
	if err != nil {
		t.Fatalf("ConvertTo() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}

	var document string
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("opening document.xml: %v", err)
			}
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatalf("reading document.xml: %v", err)
			}
			document = string(data)
		}
	}
	if document == "" {
		t.Fatal("word/document.xml missing from archive")
	}

	for _, want := range []string{
		"Civil Code",
		"General Provisions",
		"Private rights must conform to the public welfare.",
	} {
		if !strings.Contains(document, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestConvertToUnknownFormat(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	_, err := conv.ConvertTo(context.Background(), Input{XML: []byte(sampleXML)}, "pptx")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

// textFormat is a trivial custom format for registry tests.
type textFormat struct{}

func (textFormat) Name() string      { return "text" }
func (textFormat) Extension() string { return "txt" }

func (textFormat) Convert(ctx context.Context, c *Converter, input Input) ([]byte, error) {
	art, err := c.renderDocument(ctx, input)
	if err != nil {
		return nil, err
	}
	return []byte(art.title), nil
}

func TestRegisterFormat(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	conv.RegisterFormat(textFormat{})

	out, err := conv.ConvertTo(context.Background(), Input{XML: []byte(sampleXML)}, "text")
	if err != nil {
		t.Fatalf("ConvertTo() error = %v", err)
	}
	if string(out) != "Civil Code" {
		t.Errorf("output = %q, want title", out)
	}

	found := false
	for _, name := range conv.Formats() {
		if name == "text" {
			found = true
		}
	}
	if !found {
		t.Error("Formats() should list the custom format")
	}
}

func TestDocxTable(t *testing.T) {
	t.Parallel()

	xml := `<doc>
  <TableStruct>
    <TableStructTitle>Fees</TableStructTitle>
    <Table>
      <TableRow><TableColumn>Item</TableColumn><TableColumn>Amount</TableColumn></TableRow>
      <TableRow><TableColumn>Filing</TableColumn><TableColumn>300</TableColumn></TableRow>
    </Table>
  </TableStruct>
</doc>`

	conv, _ := newTestConverter(t)

	out, err := conv.ConvertTo(context.Background(), Input{XML: []byte(xml)}, "docx")
	if err != nil {
		t.Fatalf("ConvertTo() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, _ := f.Open()
		data, _ := io.ReadAll(rc)
		rc.Close()
		doc := string(data)
		if !strings.Contains(doc, "<w:tbl>") {
			t.Error("expected a table in document.xml")
		}
		for _, want := range []string{"Fees", "Item", "Amount", "Filing", "300"} {
			if !strings.Contains(doc, want) {
				t.Errorf("document.xml missing %q", want)
			}
		}
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	s, err := conv.Analyze([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if s.Counts["Sentence"] != 1 {
		t.Errorf("Counts[Sentence] = %d, want 1", s.Counts["Sentence"])
	}
	if s.Attributes["Chapter"][0] != "Num" {
		t.Errorf("Attributes[Chapter] = %v, want [Num]", s.Attributes["Chapter"])
	}

	hasContainer := false
	for _, e := range s.ContainerElements {
		if e == "Chapter" {
			hasContainer = true
		}
	}
	if !hasContainer {
		t.Error("Chapter should be classified as a container element")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	if _, err := conv.Analyze(nil); !errors.Is(err, ErrEmptyXML) {
		t.Errorf("error = %v, want ErrEmptyXML", err)
	}
	if _, err := conv.Analyze([]byte("not xml at all <")); !errors.Is(err, ErrXMLParse) {
		t.Errorf("error = %v, want ErrXMLParse", err)
	}
}
