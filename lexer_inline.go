package notetex

import (
	"regexp"
	"strings"
)

// arrowGlyphs lists every arrow, longest first so that alternation prefers
// `<-->` over `<->` over `<-` at the same position.
const arrowGlyphs = `<-->|<==>|<->|<=>|-->|==>|<--|<==|->|=>|<-|<=`

// opaqueSpans are left untouched by the arrow and emphasis lexers so the
// code and math lexers later see them whole: escaped backticks and dollars,
// code spans and math spans.
const opaqueSpans = "\\\\[`$]|`[^`]+`|\\$[^$]+\\$"

// spanPayload matches emphasis content, taking code spans as a unit so a
// marker inside code does not close the span.
const spanPayload = "((?:`[^`]+`|.)+?)"

// spanLexer finds every non-overlapping occurrence of an inline construct,
// left to right. The pattern is `opaque|\\(escape)|payload`; opaque matches
// stay unlexed, escapes become literal text.
type spanLexer struct {
	typ     TokenType
	re      *regexp.Regexp
	opaque  bool
	skip    func(*State) bool
	literal func(glyphs string) string
}

func newSpanLexer(typ TokenType, opaque bool, escape, payload string) *spanLexer {
	pattern := `\\(` + escape + `)|` + payload
	if opaque {
		pattern = `(` + opaqueSpans + `)|` + pattern
	}
	return &spanLexer{
		typ:     typ,
		re:      regexp.MustCompile(pattern),
		opaque:  opaque,
		skip:    skipVerbatim,
		literal: asIs,
	}
}

func skipVerbatim(st *State) bool { return st.InVerbatim() }

func asIs(glyphs string) string { return glyphs }

func newInlineVerbLexer() *spanLexer {
	return newSpanLexer(TokenInlineVerb, false, "`", "`([^`]+)`")
}

func newArrowLexer() *spanLexer {
	return newSpanLexer(TokenArrow, true, arrowGlyphs, `(`+arrowGlyphs+`)`)
}

func newBoldLexer() *spanLexer {
	return newSpanLexer(TokenBold, true, `\*\*`, `\*\*`+spanPayload+`\*\*`)
}

func newItalicLexer() *spanLexer {
	return newSpanLexer(TokenItalic, true, `\*`, `\*`+spanPayload+`\*`)
}

func (l *spanLexer) lex(text string, st *State) []Token {
	if text == "" {
		return nil
	}
	if l.skip(st) {
		return unlexed(text)
	}
	matches := l.re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return unlexed(text)
	}
	g := 2
	if l.opaque {
		g = 4
	}
	out := make([]Token, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		switch {
		case l.opaque && m[2] >= 0:
			// Stays in the surrounding unlexed run for a later lexer.
			continue
		case m[g] >= 0:
			out = append(out, unlexed(text[last:m[0]])...)
			out = append(out, NewToken(TokenTextContent, l.literal(text[m[g]:m[g+1]])))
		default:
			out = append(out, unlexed(text[last:m[0]])...)
			out = append(out, NewToken(l.typ, text[m[g+2]:m[g+3]]))
		}
		last = m[1]
	}
	return append(out, unlexed(text[last:])...)
}

// inlineMathLexer claims `$...$` spans. Inside a display math block the
// dollars would close math mode, so the delimiters are dropped, the payload
// is lexed for arrows and any stray dollar is escaped.
type inlineMathLexer struct {
	span  *spanLexer
	arrow *spanLexer
}

func newInlineMathLexer(arrow *spanLexer) *inlineMathLexer {
	span := newSpanLexer(TokenInlineMath, false, `\$`, `\$([^$]+)\$`)
	// A bare dollar would open math mode in the output.
	span.literal = func(string) string { return `\$` }
	return &inlineMathLexer{span: span, arrow: arrow}
}

func (l *inlineMathLexer) lex(text string, st *State) []Token {
	tokens := l.span.lex(text, st)
	if !st.InMath() || st.InVerbatim() {
		return tokens
	}
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.typ {
		case TokenInlineMath:
			out = append(out, l.arrow.lex(tok.value, st)...)
		case TokenUnlexed:
			out = append(out, NewToken(TokenUnlexed, strings.ReplaceAll(tok.value, "$", `\$`)))
		default:
			out = append(out, tok)
		}
	}
	return out
}

// textLexer is the fallback: whatever is left is literal text.
type textLexer struct{}

var newlineReplacer = strings.NewReplacer("\r", "", "\n", "")

func (textLexer) lex(text string, _ *State) []Token {
	text = newlineReplacer.Replace(text)
	if text == "" {
		return nil
	}
	return []Token{NewToken(TokenTextContent, text)}
}
