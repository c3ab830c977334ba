package notetex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sanity-io/litter"
)

func text(v string) Token { return NewToken(TokenTextContent, v) }

func bodyLexer() (*Lexer, *State) {
	st := NewState()
	st.EndHead()
	return NewLexer(st), st
}

func assertTokens(t *testing.T, line string, got, want []Token) {
	t.Helper()
	if !EqualTokens(got, want) {
		t.Fatalf("Lex(%q) mismatch (-want +got):\n%s\ngot tokens: %s",
			line, cmp.Diff(DumpTokens(want), DumpTokens(got)), litter.Sdump(got))
	}
}

func TestLexBodyLines(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Token
	}{
		{"empty", "", nil},
		{"newline only", "\n", nil},
		{"plain", "just words.\n", []Token{text("just words.")}},
		{"section", "# Title", []Token{NewLevelToken(TokenSection, "Title", 1)}},
		{"subsection", "### Deep one", []Token{NewLevelToken(TokenSection, "Deep one", 3)}},
		{"hash without space", "#tag", []Token{text("#tag")}},
		{"escaped section", `\# not a heading`, []Token{text("# not a heading")}},
		{"bullet", "* A", []Token{NewLevelToken(TokenBullet, "*", 1), text("A")}},
		{"dash bullet", "- A", []Token{NewLevelToken(TokenBullet, "-", 1), text("A")}},
		{"nested bullet", "  * B", []Token{NewLevelToken(TokenBullet, "*", 2), text("B")}},
		{"odd indentation rounds down", "   - C", []Token{NewLevelToken(TokenBullet, "-", 2), text("C")}},
		{"bare bullet", "* ", []Token{NewLevelToken(TokenBullet, "*", 1)}},
		{"enumerate", "    12. D", []Token{NewLevelToken(TokenEnumerate, "12", 3), text("D")}},
		{"escaped bullet", `\* not a bullet`, []Token{text("* not a bullet")}},
		{"escaped enumerate", `\1. not a list`, []Token{text("1. not a list")}},
		{"escaped bullet keeps indentation", `  \- x`, []Token{text("  - x")}},
		{"bullet with inline", "* a -> **b**", []Token{
			NewLevelToken(TokenBullet, "*", 1),
			text("a "),
			NewToken(TokenArrow, "->"),
			text(" "),
			NewToken(TokenBold, "b"),
		}},
		{"bold and italic", "**bold** and *it*", []Token{
			NewToken(TokenBold, "bold"),
			text(" and "),
			NewToken(TokenItalic, "it"),
		}},
		{"three bold spans", "**a** **b** **c**", []Token{
			NewToken(TokenBold, "a"),
			text(" "),
			NewToken(TokenBold, "b"),
			text(" "),
			NewToken(TokenBold, "c"),
		}},
		{"escaped bold", `\**bold\**`, []Token{text("**bold**")}},
		{"escaped italic", `\*x\*`, []Token{text("*x*")}},
		{"unclosed bold", "**unclosed", []Token{text("**unclosed")}},
		{"arrows", "a -> b <==> c", []Token{
			text("a "),
			NewToken(TokenArrow, "->"),
			text(" b "),
			NewToken(TokenArrow, "<==>"),
			text(" c"),
		}},
		{"long arrow wins", "x <--> y", []Token{text("x "), NewToken(TokenArrow, "<-->"), text(" y")}},
		{"escaped arrow", `\-> x`, []Token{text("-> x")}},
		{"inline verbatim", "`a->b` ok", []Token{NewToken(TokenInlineVerb, "a->b"), text(" ok")}},
		{"escaped backtick", "\\`x", []Token{text("`x")}},
		{"inline math", "$x <= y$", []Token{NewToken(TokenInlineMath, "x <= y")}},
		{"escaped dollar", `costs \$5`, []Token{text(`costs \$5`)}},
		{"code in bold", "**see `f()`**", []Token{NewToken(TokenBold, "see `f()`")}},
		{"markers in code are not emphasis", "`*a*` and *b*", []Token{
			NewToken(TokenInlineVerb, "*a*"),
			text(" and "),
			NewToken(TokenItalic, "b"),
		}},
		{"arrow in math stays in math", "$a -> b$ -> c", []Token{
			NewToken(TokenInlineMath, "a -> b"),
			text(" "),
			NewToken(TokenArrow, "->"),
			text(" c"),
		}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			lx, _ := bodyLexer()
			assertTokens(t, tc.line, lx.Lex(tc.line), tc.want)
		})
	}
}

func TestLexNeverLeavesUnlexed(t *testing.T) {
	lines := []string{
		"* **a** *b* -> `c` $d$",
		`\# \* \** \-> \$ \`,
		"***",
		"1.no space",
		"<-<=<-->==>",
	}
	for _, line := range lines {
		lx, _ := bodyLexer()
		for _, tok := range lx.Lex(line) {
			if tok.Type() == TokenUnlexed {
				t.Fatalf("Lex(%q) left an unlexed token: %s", line, tok)
			}
		}
	}
}

func TestLexHead(t *testing.T) {
	st := NewState()
	lx := NewLexer(st)
	assertTokens(t, "$title: My Notes", lx.Lex("$title: My Notes\n"), []Token{NewToken(TokenHeader, "title=My Notes")})
	assertTokens(t, "", lx.Lex(""), nil)
	if !st.InHead() {
		t.Fatalf("blank line must not end the head")
	}
	assertTokens(t, "===", lx.Lex("==="), nil)
	if st.InHead() {
		t.Fatalf("divider must end the head")
	}
	assertTokens(t, "$x: y", lx.Lex("$x: y"), []Token{text("$x: y")})
}

func TestLexHeadEndedByContent(t *testing.T) {
	st := NewState()
	lx := NewLexer(st)
	assertTokens(t, "Body", lx.Lex("Body"), []Token{text("Body")})
	if st.InHead() {
		t.Fatalf("content must end the head")
	}
}

func TestLexHeadEndedByEscape(t *testing.T) {
	st := NewState()
	lx := NewLexer(st)
	assertTokens(t, `\$title: x`, lx.Lex(`\$title: x`), []Token{text(`\$title: x`)})
	if st.InHead() {
		t.Fatalf("escaped header must end the head")
	}
}

func TestLexDividerVariants(t *testing.T) {
	for _, line := range []string{"===", "  =====  ", "---", "=== body"} {
		st := NewState()
		lx := NewLexer(st)
		if got := lx.Lex(line); len(got) != 0 {
			t.Fatalf("Lex(%q)=%s want no tokens", line, DumpTokens(got))
		}
		if st.InHead() {
			t.Fatalf("Lex(%q) must end the head", line)
		}
	}
}

func TestLexVerbatimOpacity(t *testing.T) {
	lx, st := bodyLexer()
	assertTokens(t, "```", lx.Lex("```go"), []Token{NewToken(TokenVerbBlock, "Start")})
	if !st.InVerbatim() {
		t.Fatalf("fence must open verbatim")
	}
	for _, line := range []string{"* item", "a *b* c", "x -> y", "# heading", "1. one", "```go"} {
		assertTokens(t, line, lx.Lex(line), []Token{text(line)})
	}
	assertTokens(t, "", lx.Lex(""), nil)
	assertTokens(t, "```", lx.Lex("  ```"), []Token{NewToken(TokenVerbBlock, "End")})
	if st.InVerbatim() {
		t.Fatalf("fence must close verbatim")
	}
}

func TestLexMathSuppressesLists(t *testing.T) {
	lx, st := bodyLexer()
	assertTokens(t, "$$", lx.Lex("$$"), []Token{NewToken(TokenMathBlock, "Start")})
	if !st.InMath() {
		t.Fatalf("fence must open math")
	}
	assertTokens(t, "* x", lx.Lex("* x"), []Token{text("* x")})
	assertTokens(t, "1. x", lx.Lex("1. x"), []Token{text("1. x")})
	assertTokens(t, "a -> b", lx.Lex("a -> b"), []Token{text("a "), NewToken(TokenArrow, "->"), text(" b")})
	assertTokens(t, "$x$ -> $", lx.Lex("$x$ -> $"), []Token{text("x "), NewToken(TokenArrow, "->"), text(` \$`)})
	assertTokens(t, "$$", lx.Lex(" $$ "), []Token{NewToken(TokenMathBlock, "End")})
	if st.InMath() {
		t.Fatalf("fence must close math")
	}
}

func TestLexInlineMathContent(t *testing.T) {
	lx, _ := bodyLexer()
	got := lx.lexMath("a*b*c -> d")
	want := []Token{text("a*b*c "), NewToken(TokenArrow, "->"), text(" d")}
	assertTokens(t, "a*b*c -> d", got, want)
}
