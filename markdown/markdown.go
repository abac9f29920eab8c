// Package markdown renders the Markdown stored in descriptions as HTML.
// Raw HTML and dangerous link schemes in the source are dropped.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// HTML converts content to an HTML string. Conversion errors yield the
// empty string.
func HTML(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return buf.String()
}
