package notetex

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/errors"
)

// IndentUnit is the number of output spaces per open list level.
const IndentUnit = 4

// ListKind is the type of an open list frame.
type ListKind uint8

const (
	// ListItemize is an unordered list.
	ListItemize ListKind = iota
	// ListEnumerate is an ordered list.
	ListEnumerate
)

// Env returns the LaTeX environment name for the list kind.
func (k ListKind) Env() string {
	if k == ListEnumerate {
		return "enumerate"
	}
	return "itemize"
}

func (k ListKind) String() string {
	if k == ListEnumerate {
		return "ENUMERATE"
	}
	return "ITEMIZE"
}

// State is the parse context shared by the lexer and parser for one
// document. It is not safe for concurrent use.
type State struct {
	inHead      bool
	inVerbatim  bool
	inMath      bool
	lists       []ListKind
	indentation int
	prefix      strings.Builder
	line        string
	wrapWidth   int

	listsArr [16]ListKind
}

// NewState returns the state of a document that has not been read yet.
func NewState() *State {
	s := &State{inHead: true}
	s.lists = s.listsArr[:0]
	return s
}

// InHead reports whether the document head is still open.
func (s *State) InHead() bool { return s.inHead }

// EndHead closes the head. It cannot be reopened.
func (s *State) EndHead() { s.inHead = false }

// InVerbatim reports whether a verbatim block is open.
func (s *State) InVerbatim() bool { return s.inVerbatim }

// ToggleVerbatim flips the verbatim flag.
func (s *State) ToggleVerbatim() { s.inVerbatim = !s.inVerbatim }

// InMath reports whether a display math block is open.
func (s *State) InMath() bool { return s.inMath }

// ToggleMath flips the math flag.
func (s *State) ToggleMath() { s.inMath = !s.inMath }

// Depth returns the number of open list frames.
func (s *State) Depth() int { return len(s.lists) }

// Lists returns a copy of the list stack, outermost first.
func (s *State) Lists() []ListKind {
	out := make([]ListKind, len(s.lists))
	copy(out, s.lists)
	return out
}

// Indentation returns the current indentation width in spaces.
func (s *State) Indentation() int { return s.indentation }

// Pending returns the text queued ahead of the next product.
func (s *State) Pending() string { return s.prefix.String() }

// BeginList reconciles the stack to exactly level frames with kind on top,
// queueing close and open tags for every transition. Level 0 closes all
// lists.
func (s *State) BeginList(level int, kind ListKind) error {
	if level < 0 {
		level = 0
	}
	if err := s.DecreaseListLevel(level); err != nil {
		return err
	}
	if level > 0 && len(s.lists) == level && s.lists[level-1] != kind {
		if err := s.PopList(s.lists[level-1]); err != nil {
			return err
		}
	}
	for len(s.lists) < level {
		s.pushList(kind)
	}
	return nil
}

// DecreaseListLevel pops frames until at most level remain.
func (s *State) DecreaseListLevel(level int) error {
	if level < 0 {
		level = 0
	}
	for len(s.lists) > level {
		if err := s.PopList(s.lists[len(s.lists)-1]); err != nil {
			return err
		}
	}
	return nil
}

// PopList closes the innermost frame, which must be of kind want.
func (s *State) PopList(want ListKind) error {
	depth := len(s.lists)
	if depth == 0 {
		return errors.WithStack(&StackMismatchError{Want: want, Empty: true})
	}
	got := s.lists[depth-1]
	if got != want || s.indentation != depth*IndentUnit {
		return errors.WithStack(&StackMismatchError{Want: want, Got: got, Depth: depth})
	}
	s.lists = s.lists[:depth-1]
	s.indentation -= IndentUnit
	s.queue(`\end{` + got.Env() + `}`)
	return nil
}

func (s *State) pushList(kind ListKind) {
	s.queue(`\begin{` + kind.Env() + `}`)
	s.lists = append(s.lists, kind)
	s.indentation += IndentUnit
}

// queue appends a tag line at the current indentation to the pending prefix.
func (s *State) queue(tag string) {
	s.prefix.WriteString(indent.String(tag, uint(s.indentation)))
	s.prefix.WriteByte('\n')
}

// SetLine sets the content of the line being built.
func (s *State) SetLine(line string) { s.line = line }

// Product returns the pending prefix followed by the current line at the
// current indentation, then clears both. Verbatim lines are not indented or
// wrapped.
func (s *State) Product() string {
	line := s.line
	if !s.inVerbatim {
		if s.wrapWidth > 0 {
			if width := s.wrapWidth - s.indentation; width > 0 {
				line = wordwrap.String(line, width)
			}
		}
		line = indent.String(line, uint(s.indentation))
	}
	out := s.prefix.String() + line
	s.prefix.Reset()
	s.line = ""
	return out
}
