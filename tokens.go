package notetex

import (
	"strconv"
	"strings"
)

// TokenType classifies a lexed span of a line.
type TokenType uint8

const (
	// TokenUnlexed is a span no sub-lexer has classified yet. It never
	// survives Lexer.Lex.
	TokenUnlexed TokenType = iota
	// TokenHeader is a `$key: value` head command, valued "key=value".
	TokenHeader
	// TokenSection is a heading; Level is the number of hashes.
	TokenSection
	// TokenVerbBlock is a verbatim fence, valued "Start" or "End".
	TokenVerbBlock
	// TokenMathBlock is a display math fence, valued "Start" or "End".
	TokenMathBlock
	// TokenTextContent is literal passthrough text.
	TokenTextContent
	// TokenArrow carries the literal arrow glyphs.
	TokenArrow
	// TokenBullet is an itemize marker; Level is the list level.
	TokenBullet
	// TokenEnumerate is a numbered-list marker; Level is the list level.
	TokenEnumerate
	// TokenBold carries the text between `**` delimiters.
	TokenBold
	// TokenItalic carries the text between `*` delimiters.
	TokenItalic
	// TokenInlineVerb carries the text between backticks.
	TokenInlineVerb
	// TokenInlineMath carries the text between `$` delimiters.
	TokenInlineMath
)

var tokenTypeNames = [...]string{
	TokenUnlexed:     "UNLEXED",
	TokenHeader:      "HEADER",
	TokenSection:     "SECTION",
	TokenVerbBlock:   "VERB_BLOCK",
	TokenMathBlock:   "MATH_BLOCK",
	TokenTextContent: "TEXT_CONTENT",
	TokenArrow:       "ARROW",
	TokenBullet:      "BULLET",
	TokenEnumerate:   "ENUMERATE",
	TokenBold:        "BOLD",
	TokenItalic:      "ITALIC",
	TokenInlineVerb:  "INLINE_VERB",
	TokenInlineMath:  "INLINE_MATH",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "TokenType(" + strconv.Itoa(int(t)) + ")"
}

const (
	blockStart = "Start"
	blockEnd   = "End"
)

// Token is an immutable (type, value) pair. Section, bullet and enumerate
// tokens also carry a level.
type Token struct {
	typ   TokenType
	value string
	level int
}

// NewToken returns a token of the given type and value.
func NewToken(typ TokenType, value string) Token {
	return Token{typ: typ, value: value}
}

// NewLevelToken returns a token that carries a nesting level.
func NewLevelToken(typ TokenType, value string, level int) Token {
	return Token{typ: typ, value: value, level: level}
}

// Type returns the token type.
func (t Token) Type() TokenType { return t.typ }

// Value returns the token payload.
func (t Token) Value() string { return t.value }

// Level returns the section or list level, zero for other tokens.
func (t Token) Level() int { return t.level }

// Equal reports whether both tokens have the same type, value and level.
func (t Token) Equal(o Token) bool {
	return t.typ == o.typ && t.value == o.value && t.level == o.level
}

// String renders the token as `TYPE "value"`, with `@level` when set.
func (t Token) String() string {
	var b strings.Builder
	b.WriteString(t.typ.String())
	if t.level > 0 {
		b.WriteByte('@')
		b.WriteString(strconv.Itoa(t.level))
	}
	b.WriteByte(' ')
	b.WriteString(strconv.Quote(t.value))
	return b.String()
}

// EqualTokens reports whether two sequences hold equal tokens in the same order.
func EqualTokens(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// DumpTokens renders one token per line for diagnostics.
func DumpTokens(tokens []Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}

// mergeText coalesces adjacent text content tokens.
func mergeText(tokens []Token) []Token {
	if len(tokens) < 2 {
		return tokens
	}
	out := tokens[:1]
	for _, tok := range tokens[1:] {
		last := &out[len(out)-1]
		if tok.typ == TokenTextContent && last.typ == TokenTextContent {
			last.value += tok.value
			continue
		}
		out = append(out, tok)
	}
	return out
}
