package notetex

import (
	"regexp"
	"strings"
)

// subLexer classifies one unlexed span. Spans it does not claim come back
// as TokenUnlexed; an empty span yields no tokens.
type subLexer interface {
	lex(text string, st *State) []Token
}

func unlexed(text string) []Token {
	if text == "" {
		return nil
	}
	return []Token{NewToken(TokenUnlexed, text)}
}

var (
	headerRe      = regexp.MustCompile(`^\$([A-Za-z][\w-]*):\s*(.*?)\s*$`)
	headDividerRe = regexp.MustCompile(`^\s*(?:={3,}|-{3,})(?:\s+.*)?$`)

	sectionRe       = regexp.MustCompile(`^(#+) (.+)$`)
	sectionEscapeRe = regexp.MustCompile(`^\\(#+)(.*)$`)

	verbFenceRe = regexp.MustCompile("^\\s*```(\\S*)\\s*$")
	mathFenceRe = regexp.MustCompile(`^\s*\$\$\s*$`)

	bulletRe          = regexp.MustCompile(`^(\s*)([*-])\s+(.*)$`)
	bulletEscapeRe    = regexp.MustCompile(`^(\s*)\\([*-]\s+)(.*)$`)
	enumerateRe       = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.*)$`)
	enumerateEscapeRe = regexp.MustCompile(`^(\s*)\\(\d+\.\s+)(.*)$`)
)

// headerLexer reads `$key: value` lines while the head is open. Blank lines
// are skipped, a divider closes the head silently and any other line closes
// it and is handed back.
type headerLexer struct{}

func (headerLexer) lex(text string, st *State) []Token {
	if !st.InHead() {
		return unlexed(text)
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if m := headerRe.FindStringSubmatch(text); m != nil {
		return []Token{NewToken(TokenHeader, m[1]+"="+m[2])}
	}
	st.EndHead()
	if headDividerRe.MatchString(text) {
		return nil
	}
	return unlexed(text)
}

type sectionLexer struct{}

func (sectionLexer) lex(text string, st *State) []Token {
	if st.InVerbatim() {
		return unlexed(text)
	}
	if m := sectionEscapeRe.FindStringSubmatch(text); m != nil {
		return append([]Token{NewToken(TokenTextContent, m[1])}, unlexed(m[2])...)
	}
	if m := sectionRe.FindStringSubmatch(text); m != nil {
		return []Token{NewLevelToken(TokenSection, strings.TrimSpace(m[2]), len(m[1]))}
	}
	return unlexed(text)
}

// verbatimLexer toggles verbatim blocks on fence lines and passes every
// other line inside a block through as text.
type verbatimLexer struct{}

func (verbatimLexer) lex(text string, st *State) []Token {
	m := verbFenceRe.FindStringSubmatch(text)
	if st.InVerbatim() {
		if m != nil && m[1] == "" {
			st.ToggleVerbatim()
			return []Token{NewToken(TokenVerbBlock, blockEnd)}
		}
		if text == "" {
			return nil
		}
		return []Token{NewToken(TokenTextContent, text)}
	}
	if m != nil {
		st.ToggleVerbatim()
		return []Token{NewToken(TokenVerbBlock, blockStart)}
	}
	return unlexed(text)
}

type mathBlockLexer struct{}

func (mathBlockLexer) lex(text string, st *State) []Token {
	if st.InVerbatim() || !mathFenceRe.MatchString(text) {
		return unlexed(text)
	}
	value := blockStart
	if st.InMath() {
		value = blockEnd
	}
	st.ToggleMath()
	return []Token{NewToken(TokenMathBlock, value)}
}

// listLexer recognizes line-start list markers. The level is derived from
// the leading whitespace width, see indentLevel.
type listLexer struct {
	typ      TokenType
	re       *regexp.Regexp
	escapeRe *regexp.Regexp
}

func newItemizeLexer() *listLexer {
	return &listLexer{typ: TokenBullet, re: bulletRe, escapeRe: bulletEscapeRe}
}

func newEnumerateLexer() *listLexer {
	return &listLexer{typ: TokenEnumerate, re: enumerateRe, escapeRe: enumerateEscapeRe}
}

func (l *listLexer) lex(text string, st *State) []Token {
	if st.InVerbatim() || st.InMath() {
		return unlexed(text)
	}
	if m := l.escapeRe.FindStringSubmatch(text); m != nil {
		return append([]Token{NewToken(TokenTextContent, m[1]+m[2])}, unlexed(m[3])...)
	}
	m := l.re.FindStringSubmatch(text)
	if m == nil {
		return unlexed(text)
	}
	return append([]Token{NewLevelToken(l.typ, m[2], indentLevel(m[1]))}, unlexed(m[3])...)
}

// indentLevel maps leading whitespace to a 1-based list level. A space
// counts one column and a tab two; every two columns add a level.
func indentLevel(lead string) int {
	width := 0
	for i := 0; i < len(lead); i++ {
		switch lead[i] {
		case '\t':
			width += 2
		default:
			width++
		}
	}
	return width/2 + 1
}
