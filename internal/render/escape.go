package render

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// EscapeString replaces the five HTML-significant characters with their
// entity equivalents. It is total: any string is safe to insert afterwards.
func EscapeString(s string) string {
	return htmlEscaper.Replace(s)
}

// Escape escapes string values and passes every other value through
// unchanged. Non-string leaves are serialized as structured dumps, which
// escape structurally rather than textually.
func Escape(v any) any {
	if s, ok := v.(string); ok {
		return EscapeString(s)
	}
	return v
}
