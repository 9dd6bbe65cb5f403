package svg

import "strings"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// validXMLChar reports whether r may appear in an XML 1.0 document.
func validXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r == 0xFFFE || r == 0xFFFF:
		return false
	}
	return r <= 0x10FFFF
}

// Sanitize replaces characters XML cannot carry with U+FFFD.
func Sanitize(s string) string {
	ok := true
	for _, r := range s {
		if !validXMLChar(r) {
			ok = false
			break
		}
	}
	if ok {
		return s
	}
	return strings.Map(func(r rune) rune {
		if validXMLChar(r) {
			return r
		}
		return '\uFFFD'
	}, s)
}

// EscapeText escapes the five XML special characters and replaces
// characters XML forbids with U+FFFD. The result is safe in both element
// content and attribute values.
func EscapeText(text string) string {
	return textEscaper.Replace(Sanitize(text))
}

// EscapeClass escapes a class attribute value. Utility classes routinely
// carry `&` (e.g. `[&>path]:...`) and quotes inside arbitrary values.
func EscapeClass(class string) string {
	return textEscaper.Replace(Sanitize(class))
}
