package main

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	xml2doc "github.com/alnah/go-xml2doc"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	Outputs   []string // one path per written format
	Err       error
	Duration  time.Duration
}

// ResultSummary counts batch outcomes.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Drain remaining jobs so the batch still completes
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %v", ErrConverterInit, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file into every requested format.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadXML, err)
		result.Duration = time.Since(start)
		return result
	}

	outDir := filepath.Dir(f.OutputBase)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	input := xml2doc.Input{
		XML:        content,
		SourceName: filepath.Base(f.InputPath),
		CSS:        params.css,
		TOC:        params.toc,
		Navigation: params.nav,
		BackLink:   params.backLink,
		Page:       params.page,
		Footer:     params.footer,
	}

	for _, format := range params.formats {
		ext, err := conv.FormatExtension(format)
		if err != nil {
			result.Err = err
			break
		}

		data, err := conv.ConvertTo(ctx, input, format)
		if err != nil {
			result.Err = fmt.Errorf("%s: %w", format, err)
			break
		}

		outPath := f.OutputBase + "." + ext
		// #nosec G306 -- outputs are meant to be readable
		if err := os.WriteFile(outPath, data, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			break
		}
		result.Outputs = append(result.Outputs, outPath)
	}

	result.Duration = time.Since(start)
	return result
}

// countResults summarizes batch outcomes.
func countResults(results []ConversionResult) ResultSummary {
	var s ResultSummary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failed conversions.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n",
				r.InputPath, strings.Join(r.Outputs, ", "), r.Duration.Round(time.Millisecond))
		} else {
			for _, out := range r.Outputs {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	summary := countResults(results)
	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// writeIndexPage writes an index.html in dir linking to every converted
// document. HTML outputs are preferred as link targets; other formats
// fall back to the first written file.
func writeIndexPage(dir string, results []ConversionResult) error {
	type entry struct {
		name string
		href string
	}

	var entries []entry
	for _, r := range results {
		if r.Err != nil || len(r.Outputs) == 0 {
			continue
		}

		target := r.Outputs[0]
		for _, out := range r.Outputs {
			if filepath.Ext(out) == ".html" {
				target = out
				break
			}
		}

		href, err := filepath.Rel(dir, target)
		if err != nil {
			href = target
		}

		name := filepath.Base(r.InputPath)
		name = strings.TrimSuffix(name, filepath.Ext(name))
		entries = append(entries, entry{name: name, href: filepath.ToSlash(href)})
	}

	if len(entries) == 0 {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n<title>Documents</title>\n")
	b.WriteString("</head>\n<body>\n<h1>Documents</h1>\n<ul>\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n",
			html.EscapeString(e.href), html.EscapeString(e.name))
	}
	b.WriteString("</ul>\n</body>\n</html>\n")

	indexPath := filepath.Join(dir, "index.html")
	// #nosec G306 -- index page is meant to be readable
	if err := os.WriteFile(indexPath, []byte(b.String()), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
