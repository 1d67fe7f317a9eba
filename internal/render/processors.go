package render

import (
	"html"
	"strings"

	"github.com/alnah/go-xml2doc/internal/xmltree"
)

// DefaultProcessors returns the built-in processors for the legislative
// document schema (Chapter/Article/Paragraph/Sentence and friends).
func DefaultProcessors() map[string]ProcessorFunc {
	return map[string]ProcessorFunc{
		"Document":       processDocument,
		"Law":            processDocument,
		"LawBody":        processDocument,
		"DocumentTitle":  processDocumentTitle,
		"EnactStatement": processEnactStatement,
		"TOC":            processTOC,
		"Chapter":        processChapter,
		"Section":        processSection,
		"Subsection":     processSubsection,
		"Article":        processArticle,
		"Paragraph":      processParagraph,
		"Sentence":       processSentence,
		"Item":           processItem,
		"Subitem1":       processSubitem1,
		"TableStruct":    processTableStruct,
		"SupplProvision": processSupplProvision,
		"AppdxTable":     processAppdxTable,
	}
}

// escape is a shorthand for titles and labels, which are never rendered
// as Markdown.
func escape(s string) string {
	return html.EscapeString(s)
}

// processDocument renders a root container by processing its children.
func processDocument(ctx *Context, n *xmltree.Node) string {
	return ctx.ProcessChildren(n)
}

func processDocumentTitle(_ *Context, n *xmltree.Node) string {
	text := n.FlatText()
	if text == "" {
		return ""
	}
	return `<div class="document-title">` + escape(text) + `</div>`
}

func processEnactStatement(ctx *Context, n *xmltree.Node) string {
	text := n.FlatText()
	if text == "" {
		return ""
	}
	return `<div class="enact-statement"><p>` + ctx.RenderText(text) + `</p></div>`
}

// processTOC renders an explicit table-of-contents element, with chapter
// and section entries linking to the matching anchors.
func processTOC(_ *Context, n *xmltree.Node) string {
	var b strings.Builder
	b.WriteString(`<div class="toc">`)

	if label := n.Find("TOCLabel").FlatText(); label != "" {
		b.WriteString(`<div class="toc-title">` + escape(label) + `</div>`)
	}

	for _, chapter := range n.FindAllDeep("TOCChapter") {
		title := chapter.Find("ChapterTitle").FlatText()
		num := chapter.Attr("Num")
		articleRange := chapter.Find("ArticleRange").FlatText()

		b.WriteString(`<div class="toc-chapter">`)
		b.WriteString(`<a href="#chapter-` + escape(num) + `" class="nav-link">` + escape(title) + `</a>`)
		if articleRange != "" {
			b.WriteString(` <span class="toc-range">` + escape(articleRange) + `</span>`)
		}
		b.WriteString(`</div>`)

		for _, section := range chapter.FindAll("TOCSection") {
			sectionTitle := section.Find("SectionTitle").FlatText()
			sectionNum := section.Attr("Num")
			sectionRange := section.Find("ArticleRange").FlatText()

			b.WriteString(`<div class="toc-section">`)
			b.WriteString(`<a href="#section-` + escape(sectionNum) + `" class="nav-link">` + escape(sectionTitle) + `</a>`)
			if sectionRange != "" {
				b.WriteString(` <span class="toc-range">` + escape(sectionRange) + `</span>`)
			}
			b.WriteString(`</div>`)
		}
	}

	if suppl := n.Find("TOCSupplProvision"); suppl != nil {
		if label := suppl.Find("SupplProvisionLabel").FlatText(); label != "" {
			b.WriteString(`<div class="toc-chapter"><strong>` + escape(label) + `</strong></div>`)
		}
	}

	b.WriteString(`</div>`)
	return b.String()
}

func processChapter(ctx *Context, n *xmltree.Node) string {
	title := n.Find("ChapterTitle").FlatText()
	num := n.Attr("Num")

	var b strings.Builder
	b.WriteString(`<div class="chapter" id="chapter-` + escape(num) + `">`)
	if title != "" {
		b.WriteString(`<div class="chapter-title">` + escape(title) + `</div>`)
	}
	for _, section := range n.FindAll("Section") {
		b.WriteString(ctx.Process(section))
	}
	for _, article := range n.FindAll("Article") {
		b.WriteString(ctx.Process(article))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func processSection(ctx *Context, n *xmltree.Node) string {
	title := n.Find("SectionTitle").FlatText()
	num := n.Attr("Num")

	var b strings.Builder
	b.WriteString(`<div class="section" id="section-` + escape(num) + `">`)
	if title != "" {
		b.WriteString(`<div class="section-title">` + escape(title) + `</div>`)
	}
	for _, subsection := range n.FindAll("Subsection") {
		b.WriteString(ctx.Process(subsection))
	}
	for _, article := range n.FindAll("Article") {
		b.WriteString(ctx.Process(article))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func processSubsection(ctx *Context, n *xmltree.Node) string {
	title := n.Find("SubsectionTitle").FlatText()

	var b strings.Builder
	b.WriteString(`<div class="subsection">`)
	if title != "" {
		b.WriteString(`<div class="subsection-title">` + escape(title) + `</div>`)
	}
	for _, article := range n.FindAll("Article") {
		b.WriteString(ctx.Process(article))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func processArticle(ctx *Context, n *xmltree.Node) string {
	title := n.Find("ArticleTitle").FlatText()
	caption := n.Find("ArticleCaption").FlatText()
	num := n.Attr("Num")

	var b strings.Builder
	b.WriteString(`<div class="article" id="article-` + escape(num) + `">`)
	if caption != "" {
		b.WriteString(`<div class="article-caption">` + escape(caption) + `</div>`)
	}
	if title != "" {
		b.WriteString(`<div class="article-title">` + escape(title) + `</div>`)
	}
	for _, paragraph := range n.FindAll("Paragraph") {
		b.WriteString(ctx.Process(paragraph))
	}
	for _, style := range n.FindAll("Style") {
		if text := style.FlatText(); text != "" {
			b.WriteString(`<div class="style-note">` + ctx.RenderText(text) + `</div>`)
		}
	}
	b.WriteString(`</div>`)
	return b.String()
}

func processParagraph(ctx *Context, n *xmltree.Node) string {
	num := n.Find("ParagraphNum").FlatText()

	var b strings.Builder
	b.WriteString(`<div class="paragraph">`)
	if num != "" {
		b.WriteString(`<span class="paragraph-num">` + escape(num) + `</span>`)
	}
	for _, ps := range n.FindAll("ParagraphSentence") {
		for _, sentence := range ps.FindAll("Sentence") {
			b.WriteString(ctx.Process(sentence))
		}
	}
	for _, sentence := range n.FindAll("Sentence") {
		b.WriteString(ctx.Process(sentence))
	}
	for _, item := range n.FindAll("Item") {
		b.WriteString(ctx.Process(item))
	}
	for _, list := range n.FindAll("List") {
		for _, sentence := range list.FindAllDeep("Sentence") {
			b.WriteString(`<div class="list">` + ctx.Process(sentence) + `</div>`)
		}
	}
	for _, table := range n.FindAll("TableStruct") {
		b.WriteString(ctx.Process(table))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// processSentence renders a Sentence, handling Ruby (furigana) and Sub
// annotations in mixed content. Empty sentences render a non-breaking
// space so table cells keep their structure.
func processSentence(ctx *Context, n *xmltree.Node) string {
	if n.Find("Ruby") != nil || n.Find("Sub") != nil {
		var b strings.Builder
		b.WriteString(`<span class="sentence">`)
		if n.Text != "" {
			b.WriteString(escape(n.Text))
		}
		for _, child := range n.Children {
			switch child.Tag {
			case "Ruby":
				base := strings.TrimSpace(child.Text)
				rt := child.Find("Rt").FlatText()
				b.WriteString(`<ruby>` + escape(base) + `<rt>` + escape(rt) + `</rt></ruby>`)
			case "Sub":
				b.WriteString(`<sub>` + escape(child.FlatText()) + `</sub>`)
			}
			if child.Tail != "" {
				b.WriteString(escape(child.Tail))
			}
		}
		b.WriteString(`</span>`)
		return b.String()
	}

	text := n.FlatText()
	if strings.TrimSpace(text) == "" {
		return `<span class="sentence">&#160;</span>`
	}
	return `<span class="sentence">` + ctx.RenderText(text) + `</span>`
}

func processItem(ctx *Context, n *xmltree.Node) string {
	title := n.Find("ItemTitle").FlatText()

	// Column layout inside ItemSentence renders as a one-column table.
	if itemSentence := n.Find("ItemSentence"); itemSentence != nil {
		if columns := itemSentence.FindAll("Column"); len(columns) > 0 {
			return renderItemColumns(ctx, title, columns)
		}
	}

	var b strings.Builder
	b.WriteString(`<div class="item">`)
	if title != "" {
		b.WriteString(`<span class="item-title">` + escape(title) + `</span>`)
	}
	if itemSentence := n.Find("ItemSentence"); itemSentence != nil {
		for _, sentence := range itemSentence.FindAll("Sentence") {
			b.WriteString(ctx.Process(sentence))
		}
	}
	for _, sub := range n.FindAll("Subitem1") {
		b.WriteString(ctx.Process(sub))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderItemColumns(ctx *Context, title string, columns []*xmltree.Node) string {
	var b strings.Builder
	b.WriteString(`<div class="item">`)
	if title != "" {
		b.WriteString(`<span class="item-title">` + escape(title) + `</span>`)
	}
	b.WriteString(`<table class="item-columns">`)
	for _, col := range columns {
		content := cellContent(ctx, col)
		if strings.TrimSpace(content) == "" {
			continue
		}
		b.WriteString(`<tr><td>` + content + `</td></tr>`)
	}
	b.WriteString(`</table></div>`)
	return b.String()
}

func processSubitem1(ctx *Context, n *xmltree.Node) string {
	title := n.Find("Subitem1Title").FlatText()

	var b strings.Builder
	b.WriteString(`<div class="subitem1">`)
	if title != "" {
		b.WriteString(`<span class="subitem-title">` + escape(title) + `</span>`)
	}
	if sentence := n.Find("Subitem1Sentence"); sentence != nil {
		for _, s := range sentence.FindAll("Sentence") {
			b.WriteString(ctx.Process(s))
		}
	}
	for _, sub2 := range n.FindAll("Subitem2") {
		b.WriteString(`<div class="subitem2">`)
		if sub2Title := sub2.Find("Subitem2Title").FlatText(); sub2Title != "" {
			b.WriteString(`<span class="subitem-title">` + escape(sub2Title) + `</span>`)
		}
		if sentence := sub2.Find("Subitem2Sentence"); sentence != nil {
			for _, s := range sentence.FindAll("Sentence") {
				b.WriteString(ctx.Process(s))
			}
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// cellBorderStyle maps the schema's Border* attributes to an inline style.
// Borders are per-cell data, so they cannot live in the stylesheet.
func cellBorderStyle(col *xmltree.Node) string {
	side := func(attr string) string {
		if col.Attr(attr) == "solid" {
			return "1px solid #333"
		}
		return "none"
	}
	return "border-top: " + side("BorderTop") +
		"; border-bottom: " + side("BorderBottom") +
		"; border-left: " + side("BorderLeft") +
		"; border-right: " + side("BorderRight")
}

// cellContent renders a table cell: Sentence children first, then
// processed children, then flat text as last resort.
func cellContent(ctx *Context, col *xmltree.Node) string {
	if sentences := col.FindAll("Sentence"); len(sentences) > 0 {
		var b strings.Builder
		for _, s := range sentences {
			b.WriteString(ctx.Process(s))
		}
		return b.String()
	}
	if content := ctx.ProcessChildren(col); strings.TrimSpace(content) != "" {
		return content
	}
	if text := col.FlatText(); text != "" {
		return ctx.RenderText(text)
	}
	return ""
}

func processTableStruct(ctx *Context, n *xmltree.Node) string {
	title := n.Find("TableStructTitle").FlatText()
	table := n.Find("Table")
	if table == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="table-wrapper">`)
	if title != "" {
		b.WriteString(`<div class="table-title">` + escape(title) + `</div>`)
	}
	b.WriteString(`<table>`)
	for _, row := range table.FindAll("TableRow") {
		b.WriteString(`<tr>`)
		for _, col := range row.FindAll("TableColumn") {
			b.WriteString(`<td style="` + cellBorderStyle(col) + `"`)
			if rowspan := col.Attr("rowspan"); rowspan != "" {
				b.WriteString(` rowspan="` + escape(rowspan) + `"`)
			}
			if colspan := col.Attr("colspan"); colspan != "" {
				b.WriteString(` colspan="` + escape(colspan) + `"`)
			}
			b.WriteString(`>` + cellContent(ctx, col) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</table></div>`)
	return b.String()
}

func processSupplProvision(ctx *Context, n *xmltree.Node) string {
	label := n.Find("SupplProvisionLabel").FlatText()
	amendNum := n.Attr("AmendLawNum")
	if amendNum == "" {
		amendNum = n.Attr("AmendNum")
	}

	var b strings.Builder
	b.WriteString(`<div class="suppl-provision" id="suppl-provision">`)
	if label != "" {
		b.WriteString(`<div class="chapter-title">` + escape(label) + `</div>`)
	}
	if amendNum != "" {
		b.WriteString(`<div class="document-meta">` + escape(amendNum) + `</div>`)
	}
	for _, article := range n.FindAll("Article") {
		b.WriteString(ctx.Process(article))
	}
	for _, paragraph := range n.FindAll("Paragraph") {
		b.WriteString(`<div class="paragraph-group">`)
		if caption := paragraph.Find("ParagraphCaption").FlatText(); caption != "" {
			b.WriteString(`<div class="article-caption">` + escape(caption) + `</div>`)
		}
		b.WriteString(ctx.Process(paragraph))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func processAppdxTable(ctx *Context, n *xmltree.Node) string {
	title := n.Find("AppdxTableTitle").FlatText()
	relatedArticle := n.Find("RelatedArticleNum").FlatText()

	tableHTML := ""
	if tableStruct := n.Find("TableStruct"); tableStruct != nil {
		tableHTML = ctx.Process(tableStruct)
	} else if table := n.Find("Table"); table != nil {
		// Bare Table without the TableStruct wrapper: wrap it so the
		// table processor applies.
		wrapper := &xmltree.Node{Tag: "TableStruct", Children: []*xmltree.Node{table}}
		tableHTML = processTableStruct(ctx, wrapper)
	}

	var b strings.Builder
	b.WriteString(`<div class="appdx-table">`)
	if title != "" {
		b.WriteString(`<div class="chapter-title">` + escape(title) + `</div>`)
	}
	if relatedArticle != "" {
		b.WriteString(`<div class="document-meta">` + escape(relatedArticle) + `</div>`)
	}
	b.WriteString(tableHTML)
	b.WriteString(`</div>`)
	return b.String()
}
