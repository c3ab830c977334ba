package notetex

import "strings"

// Lexer turns one input line into a fully classified token sequence. It
// reads and updates the State it was created with.
type Lexer struct {
	state *State

	// lineStart applies to the first token only, in priority order.
	lineStart []subLexer
	// inline applies to every unlexed token, in priority order.
	inline   []subLexer
	arrow    subLexer
	fallback textLexer
}

// NewLexer returns a lexer bound to st.
func NewLexer(st *State) *Lexer {
	arrow := newArrowLexer()
	return &Lexer{
		state: st,
		lineStart: []subLexer{
			headerLexer{},
			sectionLexer{},
			verbatimLexer{},
			mathBlockLexer{},
			newItemizeLexer(),
			newEnumerateLexer(),
		},
		inline: []subLexer{
			arrow,
			newBoldLexer(),
			newItalicLexer(),
			newInlineVerbLexer(),
			newInlineMathLexer(arrow),
		},
		arrow: arrow,
	}
}

// Lex classifies line. A trailing newline is ignored. The result never
// contains TokenUnlexed.
func (l *Lexer) Lex(line string) []Token {
	line = strings.TrimRight(line, "\r\n")
	tokens := unlexed(line)
	for _, sub := range l.lineStart {
		if len(tokens) == 0 || tokens[0].typ != TokenUnlexed {
			break
		}
		head := sub.lex(tokens[0].value, l.state)
		tokens = append(head, tokens[1:]...)
	}
	return l.lexRest(tokens)
}

// LexInline classifies text using only the position-independent lexers. It
// is used for the payload of sections and emphasis spans.
func (l *Lexer) LexInline(text string) []Token {
	return l.lexRest(unlexed(text))
}

// lexMath classifies the content of inline math, where only arrows are
// markup.
func (l *Lexer) lexMath(text string) []Token {
	return mergeText(l.apply(l.fallback, l.apply(l.arrow, unlexed(text))))
}

func (l *Lexer) lexRest(tokens []Token) []Token {
	for _, sub := range l.inline {
		tokens = l.apply(sub, tokens)
	}
	return mergeText(l.apply(l.fallback, tokens))
}

func (l *Lexer) apply(sub subLexer, tokens []Token) []Token {
	var out []Token
	for i, tok := range tokens {
		if tok.typ != TokenUnlexed {
			if out != nil {
				out = append(out, tok)
			}
			continue
		}
		if out == nil {
			out = make([]Token, i, len(tokens)+2)
			copy(out, tokens[:i])
		}
		out = append(out, sub.lex(tok.value, l.state)...)
	}
	if out == nil {
		return tokens
	}
	return out
}
