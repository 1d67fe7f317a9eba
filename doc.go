// Package xml2doc converts structured XML documents to styled HTML, PDF,
// Markdown, and Word output using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert XML, and close when done:
//
//	conv, err := xml2doc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, xml2doc.Input{
//	    XML: content,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result contains both the PDF bytes (result.PDF) and the intermediate
// HTML (result.HTML) for debugging. Use Input.HTMLOnly to skip PDF
// generation.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. XML parsing into a generic element tree
//  2. Element rendering via registered processors (structural elements,
//     tables, annotations)
//  3. Document assembly (template shell, CSS, table of contents,
//     navigation panel)
//  4. PDF rendering via headless Chrome (go-rod)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := xml2doc.NewConverter(
//	    xml2doc.WithTimeout(2 * time.Minute),
//	    xml2doc.WithStyle("compact"),
//	    xml2doc.WithAssetPath("/path/to/custom/assets"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, xml2doc.Input{
//	    XML:        content,
//	    CSS:        "body { font-size: 14px; }",
//	    Page:       &xml2doc.PageSettings{Size: "a4"},
//	    Footer:     &xml2doc.Footer{ShowPageNumber: true, Date: "auto"},
//	    TOC:        &xml2doc.TOC{Title: "Contents"},
//	    Navigation: &xml2doc.Navigation{},
//	})
//
// # Custom Elements
//
// Unknown elements render through name-pattern heuristics. For full
// control, register a processor for the element name:
//
//	conv, err := xml2doc.NewConverter(
//	    xml2doc.WithProcessor("Remarks", func(e xml2doc.Element) string {
//	        return `<aside class="remarks">` + e.Children + `</aside>`
//	    }),
//	)
//
// Use Analyze to inspect an unfamiliar document's structure first.
//
// # Output Formats
//
// Besides Convert, ConvertTo encodes the document in a named format:
// "html", "pdf", "markdown", or "docx". Register additional formats with
// RegisterFormat.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser
// instances:
//
//	pool := xml2doc.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
package xml2doc
