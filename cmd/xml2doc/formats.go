package main

import (
	"fmt"

	xml2doc "github.com/alnah/go-xml2doc"
)

// runFormatsCmd lists the registered output formats with their file
// extensions.
func runFormatsCmd(env *Environment) int {
	conv, err := xml2doc.NewConverter()
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	defer conv.Close()

	for _, name := range conv.Formats() {
		ext, err := conv.FormatExtension(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(env.Stdout, "%-12s .%s\n", name, ext)
	}
	return ExitSuccess
}
