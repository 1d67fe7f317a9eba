package main

import (
	"io"
	"os"
	"time"

	xml2doc "github.com/alnah/go-xml2doc"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and pool construction.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	NewPool func(size int, opts ...xml2doc.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}
