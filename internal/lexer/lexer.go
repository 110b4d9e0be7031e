// # internal/lexer/lexer.go
package lexer

import "strings"

// Include is one #include directive as encountered in the text.
type Include struct {
	Name   string
	System bool // true for <name>, false for "name"
}

// Scan walks raw file text and returns the include directives in source order
// together with the number of code lines. A code line is any line that is not
// blank and not fully inside a comment; it counts once no matter how many
// tokens it carries.
//
// An #include whose target uses neither <...> nor "..." yields no directive
// and scanning continues on the next line.
func Scan(data string) ([]Include, int) {
	var includes []Include
	codeLines := 0

	s := data
	for len(s) > 0 {
		if rest, ok := skipWhitespace(s); ok {
			s = rest
			continue
		}
		if rest, ok := skipComment(s); ok {
			s = rest
			continue
		}

		codeLines++
		if inc, ok := tryExtractInclude(s); ok {
			includes = append(includes, inc)
		}
		s = skipToEndOfLine(s)
	}

	return includes, codeLines
}

// CountLines counts physical lines the way an editor would: a trailing
// newline does not open an extra empty line.
func CountLines(data string) int {
	if data == "" {
		return 0
	}
	n := strings.Count(data, "\n")
	if !strings.HasSuffix(data, "\n") {
		n++
	}
	return n
}

func skipWhitespace(s string) (string, bool) {
	c := s[0]
	if c <= ' ' || c == 0x7f {
		return s[1:], true
	}
	return s, false
}

func skipComment(s string) (string, bool) {
	if strings.HasPrefix(s, "//") {
		return skipToEndOfLine(s[2:]), true
	}
	if strings.HasPrefix(s, "/*") {
		// An unterminated block comment consumes the rest of the text.
		if idx := strings.Index(s, "*/"); idx >= 0 {
			return s[idx+2:], true
		}
		return "", true
	}
	return s, false
}

func skipToEndOfLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[idx+1:]
	}
	return ""
}

// extractName returns the text up to the closing delimiter, or false when
// the delimiter never appears before end of text.
func extractName(s string, closing byte) (string, bool) {
	if idx := strings.IndexByte(s, closing); idx >= 0 {
		return s[:idx], true
	}
	return "", false
}

func tryExtractInclude(s string) (Include, bool) {
	if !strings.HasPrefix(s, "#") {
		return Include{}, false
	}
	s = s[1:]

	for len(s) > 0 {
		rest, ok := skipWhitespace(s)
		if !ok {
			break
		}
		s = rest
	}

	if !strings.HasPrefix(s, "include") {
		return Include{}, false
	}
	s = s[len("include"):]

	for len(s) > 0 {
		rest, ok := skipWhitespace(s)
		if !ok {
			break
		}
		s = rest
	}

	switch {
	case strings.HasPrefix(s, "<"):
		if name, ok := extractName(s[1:], '>'); ok {
			return Include{Name: name, System: true}, true
		}
	case strings.HasPrefix(s, `"`):
		if name, ok := extractName(s[1:], '"'); ok {
			return Include{Name: name, System: false}, true
		}
	}

	// Unsupported directive shape or unterminated delimiter.
	return Include{}, false
}
