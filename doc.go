// Package notetex converts notes markup to LaTeX.
//
// Notes markup is line oriented: an optional head of `$key: value` lines,
// then headings (`#`), itemized (`*`, `-`) and numbered (`1.`) lists nested
// by two-space indentation, fenced verbatim (```) and display math ($$)
// blocks, and inline bold, italic, code, math and arrows. A backslash in
// front of any markup glyph makes it literal.
//
// Conversion is a two stage pipeline per line. A Lexer classifies the line
// into tokens, consulting and updating a State that carries the head,
// verbatim, math and list-nesting context between lines. A Parser renders
// the tokens, using the State to balance \begin/\end tags and to indent
// list content.
//
// Example:
//
//	err := notetex.Convert(notetex.ConvertRequest{
//		Reader: strings.NewReader("$title: Week 1\n===\n# Intro\n* a -> b\n"),
//		Writer: os.Stdout,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Parser can also be driven directly, one line at a time, with Start,
// ParseHeadLine, ParseLine and End.
package notetex
