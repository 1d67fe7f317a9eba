package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	xml2doc "github.com/alnah/go-xml2doc"
)

// sampleXML is a minimal legislative document for CLI tests.
const sampleXML = `<Law Era="Meiji" Year="29">
  <LawTitle>Civil Code</LawTitle>
  <Chapter Num="1">
    <ChapterTitle>General Provisions</ChapterTitle>
    <Article Num="1">
      <Paragraph Num="1">
        <ParagraphSentence>
          <Sentence>Private rights must conform to the public welfare.</Sentence>
        </ParagraphSentence>
      </Paragraph>
    </Article>
  </Chapter>
</Law>`

// mockConverter records conversion calls and returns canned output.
type mockConverter struct {
	mu      sync.Mutex
	calls   []mockCall
	err     error
	convert func(format string) ([]byte, error)
}

type mockCall struct {
	Input  xml2doc.Input
	Format string
}

func newMockConverter() *mockConverter {
	return &mockConverter{}
}

func (m *mockConverter) ConvertTo(_ context.Context, input xml2doc.Input, format string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, mockCall{Input: input, Format: format})
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.convert != nil {
		return m.convert(format)
	}
	return []byte("output:" + format), nil
}

func (m *mockConverter) FormatExtension(name string) (string, error) {
	switch name {
	case "html":
		return "html", nil
	case "pdf":
		return "pdf", nil
	case "markdown":
		return "md", nil
	case "docx":
		return "docx", nil
	default:
		return "", fmt.Errorf("%w: %q", xml2doc.ErrUnknownFormat, name)
	}
}

func (m *mockConverter) getCalls() []mockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]mockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// testPool is a Pool backed by a single shared mock converter.
type testPool struct {
	mock   *mockConverter
	size   int
	sem    chan CLIConverter
	mu     sync.Mutex
	closed bool
}

func newTestPool(mock *mockConverter, size int) *testPool {
	p := &testPool{mock: mock, size: size, sem: make(chan CLIConverter, size)}
	for i := 0; i < size; i++ {
		p.sem <- mock
	}
	return p
}

func (p *testPool) Acquire() (CLIConverter, error) {
	return <-p.sem, nil
}

func (p *testPool) Release(c CLIConverter) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	// Send outside lock to avoid deadlock: if channel is full,
	// holding the lock would prevent Close() from running.
	p.sem <- c
}

func (p *testPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.sem)
	}
	return nil
}

func (p *testPool) Size() int {
	return p.size
}

// testEnv holds a test environment with captured output.
type testEnv struct {
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	mock   *mockConverter
}

// newTestEnv builds an Environment wired to buffers and a mock pool.
func newTestEnv() *testEnv {
	mock := newMockConverter()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		mock:   mock,
	}
	te.env = &Environment{
		Now:    func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPool: func(size int, opts ...xml2doc.Option) Pool {
			return newTestPool(mock, size)
		},
	}
	return te
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}
