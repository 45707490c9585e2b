package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown converts text to HTML. The renderer always escapes text before
// handing it to the transform, so implementations receive entity-safe input
// and must not escape again.
type Markdown func(text string) string

// GoldmarkMarkdown returns the default Markdown transform. Raw HTML is left
// intact: the input is already escaped, so there is nothing unsafe to strip
// and stripping would eat the entities.
func GoldmarkMarkdown() Markdown {
	md := goldmark.New(goldmark.WithRendererOptions(ghtml.WithUnsafe()))
	return func(text string) string {
		var buf bytes.Buffer
		if err := md.Convert([]byte(text), &buf); err != nil {
			return text
		}
		return buf.String()
	}
}
