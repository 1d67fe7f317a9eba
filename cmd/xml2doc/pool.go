package main

import (
	"context"

	xml2doc "github.com/alnah/go-xml2doc"
)

// CLIConverter is the converter surface the CLI needs. One converter is
// acquired per worker; each owns its own browser instance.
type CLIConverter interface {
	ConvertTo(ctx context.Context, input xml2doc.Input, format string) ([]byte, error)
	FormatExtension(name string) (string, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*xml2doc.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Close() error
	Size() int
}

// converterPool adapts the library pool to the CLI Pool interface.
type converterPool struct {
	inner *xml2doc.ConverterPool
}

// newConverterPool creates a pool with capacity for n converters.
// Converters are created lazily when acquired, not at pool creation.
func newConverterPool(n int, opts ...xml2doc.Option) Pool {
	return &converterPool{inner: xml2doc.NewConverterPool(n, opts...)}
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

func (p *converterPool) Acquire() (CLIConverter, error) {
	return p.inner.Acquire()
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*xml2doc.Converter); ok {
		p.inner.Release(conv)
	}
}

func (p *converterPool) Close() error {
	return p.inner.Close()
}

func (p *converterPool) Size() int {
	return p.inner.Size()
}
