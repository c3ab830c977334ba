package notetex

import (
	"strings"
)

// arrowMacros maps arrow glyphs to LaTeX math macros. A single dash is a
// short arrow, a double dash or double equals is a long one, and `=` makes
// the arrow double-stroked.
var arrowMacros = map[string]string{
	"->":   `\rightarrow`,
	"=>":   `\Rightarrow`,
	"-->":  `\longrightarrow`,
	"==>":  `\Longrightarrow`,
	"<-":   `\leftarrow`,
	"<=":   `\Leftarrow`,
	"<--":  `\longleftarrow`,
	"<==":  `\Longleftarrow`,
	"<->":  `\leftrightarrow`,
	"<=>":  `\Leftrightarrow`,
	"<-->": `\longleftrightarrow`,
	"<==>": `\Longleftrightarrow`,
}

// ArrowMacro returns the LaTeX macro for an arrow glyph sequence.
func ArrowMacro(glyphs string) (string, bool) {
	m, ok := arrowMacros[glyphs]
	return m, ok
}

const verbDelimiters = "|!+@#~=/"

// Parser converts notes markup to LaTeX one line at a time. A Parser owns
// its State and handles exactly one document.
type Parser struct {
	cfg      config
	state    *State
	lexer    *Lexer
	head     head
	err      error
	warnings []error
}

// NewParser returns a parser with fresh state.
func NewParser(opts ...Option) *Parser {
	cfg := newConfig(opts)
	st := NewState()
	st.wrapWidth = cfg.wrapWidth
	return &Parser{
		cfg:   cfg,
		state: st,
		lexer: NewLexer(st),
		head:  newHead(cfg),
	}
}

// InHead reports whether the parser still accepts head lines.
func (p *Parser) InHead() bool { return p.state.InHead() }

// Head returns the head entries read so far, in order.
func (p *Parser) Head() []HeadEntry {
	out := make([]HeadEntry, len(p.head.entries))
	copy(out, p.head.entries)
	return out
}

// Warnings returns the non-fatal conditions recorded so far.
func (p *Parser) Warnings() []error {
	out := make([]error, len(p.warnings))
	copy(out, p.warnings)
	return out
}

// Err returns the fatal error that stopped the parser, if any.
func (p *Parser) Err() error { return p.err }

// ParseHeadLine feeds one line to the document head. It reports whether
// the head consumed the line; false means the head is over and the line
// belongs to the body.
func (p *Parser) ParseHeadLine(line string) bool {
	if p.err != nil || !p.state.InHead() {
		return false
	}
	tokens := headerLexer{}.lex(strings.TrimRight(line, "\r\n"), p.state)
	if len(tokens) == 0 {
		return true
	}
	if tokens[0].typ == TokenHeader {
		p.head.set(tokens[0].value)
		return true
	}
	return false
}

// Start closes the head and returns the preamble through \maketitle.
func (p *Parser) Start() string {
	p.state.EndHead()
	return p.head.render()
}

// ParseLine converts one line. The result may span several lines when
// list or block tags are closed or opened ahead of it. Head lines yield an
// empty result.
func (p *Parser) ParseLine(line string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	inHead := p.state.InHead()
	tokens := p.lexer.Lex(line)
	if inHead {
		if len(tokens) == 0 {
			return "", nil
		}
		if tokens[0].typ == TokenHeader {
			p.head.set(tokens[0].value)
			return "", nil
		}
	}
	out, err := p.render(tokens)
	if err != nil {
		p.err = err
		return "", err
	}
	return out, nil
}

// End closes every open list and any block left open, and returns the
// document footer.
func (p *Parser) End() (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if err := p.state.DecreaseListLevel(0); err != nil {
		p.err = err
		return "", err
	}
	var closes []string
	if p.state.InVerbatim() {
		p.state.ToggleVerbatim()
		closes = append(closes, `\end{verbatim}`)
		p.warn(&UnterminatedBlockError{Block: "verbatim"})
	}
	if p.state.InMath() {
		p.state.ToggleMath()
		closes = append(closes, `\]`)
		p.warn(&UnterminatedBlockError{Block: "math"})
	}
	closes = append(closes, `\end{document}`)
	p.state.SetLine(strings.Join(closes, "\n"))
	return p.state.Product(), nil
}

func (p *Parser) warn(err error) {
	p.warnings = append(p.warnings, err)
	if p.cfg.warn != nil {
		p.cfg.warn(err)
	}
}

func (p *Parser) render(tokens []Token) (string, error) {
	var b strings.Builder
	if len(tokens) > 0 {
		first := tokens[0]
		switch first.typ {
		case TokenBullet, TokenEnumerate:
			kind := ListItemize
			if first.typ == TokenEnumerate {
				kind = ListEnumerate
			}
			if err := p.state.BeginList(first.level, kind); err != nil {
				return "", err
			}
			b.WriteString(`\item`)
			if len(tokens) > 1 {
				b.WriteByte(' ')
				p.renderInline(&b, tokens[1:], p.state.InMath(), false)
			}
		case TokenVerbBlock, TokenMathBlock:
			if err := p.state.DecreaseListLevel(0); err != nil {
				return "", err
			}
			b.WriteString(blockTag(first))
		case TokenSection:
			if err := p.state.DecreaseListLevel(0); err != nil {
				return "", err
			}
			b.WriteString(sectionCommand(first.level))
			b.WriteByte('{')
			p.renderInline(&b, p.lexer.LexInline(first.value), p.state.InMath(), true)
			b.WriteByte('}')
		default:
			p.renderInline(&b, tokens, p.state.InMath(), false)
		}
	}
	p.state.SetLine(b.String())
	return p.state.Product(), nil
}

func blockTag(tok Token) string {
	start := tok.value == blockStart
	switch {
	case tok.typ == TokenVerbBlock && start:
		return `\begin{verbatim}`
	case tok.typ == TokenVerbBlock:
		return `\end{verbatim}`
	case start:
		return `\[`
	default:
		return `\]`
	}
}

// sectionCommand returns \section*, \subsection*, ... for a heading level.
func sectionCommand(level int) string {
	if level < 1 {
		level = 1
	}
	return `\` + strings.Repeat("sub", level-1) + "section*"
}

// renderInline writes tokens to b. nested is set inside a command argument,
// where \verb is not allowed.
func (p *Parser) renderInline(b *strings.Builder, tokens []Token, inMath, nested bool) {
	for _, tok := range tokens {
		switch tok.typ {
		case TokenBold:
			b.WriteString(`\textbf{`)
			p.renderInline(b, p.lexer.LexInline(tok.value), false, true)
			b.WriteByte('}')
		case TokenItalic:
			b.WriteString(`\textit{`)
			p.renderInline(b, p.lexer.LexInline(tok.value), false, true)
			b.WriteByte('}')
		case TokenArrow:
			macro, ok := arrowMacros[tok.value]
			if !ok {
				b.WriteString(tok.value)
				continue
			}
			if inMath {
				b.WriteString(macro)
				continue
			}
			b.WriteString("$" + macro + "$")
		case TokenInlineVerb:
			if nested {
				b.WriteString(texttt(tok.value))
				continue
			}
			b.WriteString(verb(tok.value))
		case TokenInlineMath:
			b.WriteByte('$')
			p.renderInline(b, p.lexer.lexMath(tok.value), true, nested)
			b.WriteByte('$')
		default:
			b.WriteString(tok.value)
		}
	}
}

// verb renders inline verbatim with a delimiter the text does not contain.
func verb(text string) string {
	for i := 0; i < len(verbDelimiters); i++ {
		d := verbDelimiters[i : i+1]
		if !strings.Contains(text, d) {
			return `\verb` + d + text + d
		}
	}
	return texttt(text)
}

var textttEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`_`, `\_`,
	`#`, `\#`,
	`%`, `\%`,
	`&`, `\&`,
	`$`, `\$`,
	`^`, `\^{}`,
	`~`, `\~{}`,
)

// texttt renders code as typewriter text with the LaTeX specials escaped.
func texttt(text string) string {
	return `\texttt{` + textttEscaper.Replace(text) + `}`
}
