package models

import (
	"bytes"
	"regexp"

	"github.com/russross/blackfriday"
	"golang.org/x/net/html"
)

const htmlCruft = `<html><head></head><body>`

var (
	longWords      = regexp.MustCompile(`([^\s]{40})`)
	breakLongWords = "${1}\u00AD"
)

// MarkdownToHTML renders a package readme. The output is not safe to show
// until it has been through SanitiseHTML.
func MarkdownToHTML(src []byte) []byte {

	extensions := 0

	// detect embedded URLs that are not explicitly marked
	extensions |= blackfriday.EXTENSION_AUTOLINK

	// render fenced code blocks
	extensions |= blackfriday.EXTENSION_FENCED_CODE

	// ignore emphasis markers inside words
	extensions |= blackfriday.EXTENSION_NO_INTRA_EMPHASIS

	// be strict about prefix header rules
	extensions |= blackfriday.EXTENSION_SPACE_HEADERS

	// strikethrough text using ~~test~~
	extensions |= blackfriday.EXTENSION_STRIKETHROUGH

	// render HTML tables
	extensions |= blackfriday.EXTENSION_TABLES

	// readmes lean on heading anchors for their tables of contents
	extensions |= blackfriday.EXTENSION_AUTO_HEADER_IDS

	htmlFlags := 0

	// generate XHTML output instead of HTML
	htmlFlags |= blackfriday.HTML_USE_XHTML

	// skip embedded <style> elements
	htmlFlags |= blackfriday.HTML_SKIP_STYLE

	renderer := blackfriday.HtmlRenderer(htmlFlags, "", "")

	htmlBytes := blackfriday.Markdown(src, renderer, extensions)

	// Insert \u00AD (HTML &shy;) every 40 chars within any long words so that
	// long identifiers in readmes wrap on narrow screens.
	htmlRoot, err := html.Parse(bytes.NewReader(htmlBytes))
	if err != nil {
		return []byte{}
	}

	var replaceLongStrings func(*html.Node)
	replaceLongStrings = func(n *html.Node) {

		// Code must stay copyable
		if n.Type == html.ElementNode && (n.Data == "pre" || n.Data == "code") {
			return
		}

		if n.Type == html.TextNode {
			n.Data = longWords.ReplaceAllString(n.Data, breakLongWords)
		}

		// Walk the tree
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			replaceLongStrings(c)
		}
	}
	// Start the tree walk
	replaceLongStrings(htmlRoot)

	// Render the modified HTML tree
	b := new(bytes.Buffer)
	if html.Render(b, htmlRoot) != nil {
		return []byte{}
	}

	out := b.Bytes()

	// The treewalking leaves behind a stub root node
	if bytes.HasPrefix(out, []byte(htmlCruft)) {
		out = out[len([]byte(htmlCruft)):]
	}
	out = bytes.TrimSuffix(out, []byte(`</body></html>`))

	return out
}
