package flowexpr

import (
	"context"
	"strings"
)

// interpolate resolves every {...} site inside every string literal of
// text, splicing the evaluated values back in place. Text without string
// literals passes through untouched.
//
// Literals and sites are found with a character scanner rather than
// pattern matching: escape state, quote nesting, and brace depth are
// tracked explicitly, so a site may itself contain quoted literals with
// further sites ({"{1+1}"} resolves innermost first).
func (e *Engine) interpolate(ctx context.Context, text string, vars map[string]any, depth int) (string, error) {
	if !strings.ContainsAny(text, `"'`) {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		c := text[i]
		if c != '"' && c != '\'' {
			b.WriteByte(c)
			i++
			continue
		}

		processed, next, err := e.parseLiteral(ctx, text, i, vars, depth)
		if err != nil {
			return "", err
		}
		if next < 0 {
			// No closing quote: plain text, not a literal.
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteString(processed)
		i = next
	}
	return b.String(), nil
}

// parseLiteral consumes one quoted literal starting at text[start],
// substituting every single-brace site and collapsing doubled-brace
// escapes. It returns the processed literal (quotes preserved) and the
// index just past the closing quote, or next < 0 when the literal never
// closes.
func (e *Engine) parseLiteral(ctx context.Context, text string, start int, vars map[string]any, depth int) (string, int, error) {
	if !literalCloses(text, start) {
		return "", -1, nil
	}

	quote := text[start]
	var content strings.Builder

	for i := start + 1; i < len(text); {
		c := text[i]

		if c == '\\' && i+1 < len(text) {
			content.WriteByte(c)
			content.WriteByte(text[i+1])
			i += 2
			continue
		}

		if c == quote {
			collapsed := collapseBraces(content.String())
			return string(quote) + collapsed + string(quote), i + 1, nil
		}

		if c == '{' && i+1 < len(text) && text[i+1] == '{' {
			content.WriteString("{{")
			i += 2
			continue
		}
		if c == '}' && i+1 < len(text) && text[i+1] == '}' {
			content.WriteString("}}")
			i += 2
			continue
		}

		if c == '{' {
			inner, next, ok := scanSite(text, i)
			if !ok {
				content.WriteByte(c)
				i++
				continue
			}

			value, err := e.evalSite(ctx, inner, vars, depth)
			if err != nil {
				return "", 0, err
			}
			content.WriteString(escapeQuotes(Stringify(value)))
			i = next
			continue
		}

		content.WriteByte(c)
		i++
	}

	return "", -1, nil
}

// literalCloses reports whether the literal opening at text[start]
// has a closing quote, using the same scanning rules as parseLiteral:
// backslash escapes are skipped and site spans are stepped over whole,
// so a quote inside a {...} site does not close the literal. Checked up
// front so sites in an unterminated literal are never evaluated.
func literalCloses(text string, start int) bool {
	quote := text[start]
	for i := start + 1; i < len(text); {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			i += 2
			continue
		}
		if c == quote {
			return true
		}
		if c == '{' && i+1 < len(text) && text[i+1] == '{' {
			i += 2
			continue
		}
		if c == '{' {
			if _, next, ok := scanSite(text, i); ok {
				i = next
				continue
			}
		}
		i++
	}
	return false
}

// scanSite checks whether the { at text[i] opens an interpolation site.
// The site ends at the matching unquoted } at brace depth zero; quoted
// spans inside the site are skipped, so inner text may contain string
// literals of its own. An empty site, an unmatched brace, or a closing
// brace that is part of a }} pair is not a site.
//
// On success scanSite returns the enclosed text and the index just past
// the closing brace.
func scanSite(text string, i int) (inner string, next int, ok bool) {
	depth := 1
	var quote byte

	for j := i + 1; j < len(text); j++ {
		c := text[j]

		if quote != 0 {
			if c == '\\' {
				j++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth > 0 {
				continue
			}
			if j == i+1 {
				return "", 0, false // empty site
			}
			if j+1 < len(text) && text[j+1] == '}' {
				return "", 0, false // closing brace is an escape pair
			}
			return text[i+1 : j], j + 1, true
		}
	}
	return "", 0, false
}

// evalSite runs the full pipeline on the text of one interpolation site.
// Any failure is wrapped so the offending inner text is identified.
func (e *Engine) evalSite(ctx context.Context, inner string, vars map[string]any, depth int) (any, error) {
	ctx, span := e.spans.StartSiteSpan(ctx, inner)
	value, err := e.eval(ctx, inner, vars, depth+1)
	e.spans.EndSpanWithError(span, err)
	e.metrics.RecordInterpolation(ctx, err == nil)
	if err != nil {
		return nil, &InterpolationError{Inner: inner, Err: err}
	}
	return value, nil
}

// collapseBraces rewrites doubled-brace escapes to single braces after
// all sites in a literal have been substituted.
func collapseBraces(s string) string {
	s = strings.ReplaceAll(s, "{{", "{")
	return strings.ReplaceAll(s, "}}", "}")
}

// escapeQuotes escapes quote characters so an interpolated value is safe
// to splice back into the surrounding literal.
func escapeQuotes(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "'", `\'`)
}
