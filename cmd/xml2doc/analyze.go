package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	xml2doc "github.com/alnah/go-xml2doc"
)

// structureReport mirrors xml2doc.Structure with JSON field names for
// machine-readable output.
type structureReport struct {
	Elements          []string            `json:"elements"`
	Counts            map[string]int      `json:"counts"`
	Hierarchy         map[string][]string `json:"hierarchy"`
	Attributes        map[string][]string `json:"attributes,omitempty"`
	TextElements      []string            `json:"text_elements,omitempty"`
	ContainerElements []string            `json:"container_elements,omitempty"`
}

// runAnalyzeCmd inspects an XML document and prints its structure.
// Useful before writing custom processors or a stylesheet for an
// unfamiliar schema.
func runAnalyzeCmd(args []string, env *Environment) int {
	jsonOutput := false
	var inputPath string
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
			continue
		}
		inputPath = arg
	}

	if inputPath == "" {
		fmt.Fprintln(env.Stderr, "Usage: xml2doc analyze [--json] <file.xml>")
		return ExitUsage
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		fmt.Fprintf(env.Stderr, "%v\n", fmt.Errorf("%w: %v", ErrReadXML, err))
		return ExitIO
	}

	conv, err := xml2doc.NewConverter()
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	defer conv.Close()

	structure, err := conv.Analyze(content)
	if err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintsFor(err))
		return exitCodeFor(err)
	}

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(structureReport{
			Elements:          structure.Elements,
			Counts:            structure.Counts,
			Hierarchy:         structure.Hierarchy,
			Attributes:        structure.Attributes,
			TextElements:      structure.TextElements,
			ContainerElements: structure.ContainerElements,
		})
	} else {
		printStructure(env.Stdout, inputPath, structure)
	}

	return ExitSuccess
}

// printStructure outputs a human-readable structure report.
func printStructure(w io.Writer, inputPath string, s *xml2doc.Structure) {
	fmt.Fprintf(w, "Structure of %s\n", inputPath)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Elements:")
	for _, name := range s.Elements {
		line := fmt.Sprintf("  %-24s x%d", name, s.Counts[name])
		if attrs := s.Attributes[name]; len(attrs) > 0 {
			line += "  [@" + strings.Join(attrs, ", @") + "]"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Hierarchy:")
	parents := make([]string, 0, len(s.Hierarchy))
	for parent := range s.Hierarchy {
		parents = append(parents, parent)
	}
	sort.Strings(parents)
	for _, parent := range parents {
		fmt.Fprintf(w, "  %s > %s\n", parent, strings.Join(s.Hierarchy[parent], ", "))
	}

	if len(s.TextElements) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Text elements: %s\n", strings.Join(s.TextElements, ", "))
	}
	if len(s.ContainerElements) > 0 {
		fmt.Fprintf(w, "Container elements: %s\n", strings.Join(s.ContainerElements, ", "))
	}
}
