package report

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var engine = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// RenderHTML converts the Markdown report into a standalone HTML page.
func RenderHTML(title, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := engine.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("render report html: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(title))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// HTMLPath is where the HTML copy of a report written to output goes: the
// extension is swapped for .html, or .report.html when output is already HTML.
func HTMLPath(output string) string {
	ext := filepath.Ext(output)
	stem := strings.TrimSuffix(output, ext)
	if strings.EqualFold(ext, ".html") || strings.EqualFold(ext, ".htm") {
		return stem + ".report.html"
	}
	return stem + ".html"
}
