package notetex

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrStackMismatch reports a broken list-nesting invariant. It is fatal
	// for the document being parsed.
	ErrStackMismatch = errors.New("list stack mismatch")
	// ErrUnterminatedBlock reports a verbatim or math block still open at
	// end of input.
	ErrUnterminatedBlock = errors.New("unterminated block")
)

// StackMismatchError describes a pop that found an empty stack or a frame
// of the wrong kind.
type StackMismatchError struct {
	Want  ListKind
	Got   ListKind
	Empty bool
	Depth int
}

func (e *StackMismatchError) Error() string {
	if e.Empty {
		return fmt.Sprintf("%v: pop %s from empty stack", ErrStackMismatch, e.Want)
	}
	return fmt.Sprintf("%v: pop %s at depth %d, top is %s", ErrStackMismatch, e.Want, e.Depth, e.Got)
}

// Is matches ErrStackMismatch.
func (e *StackMismatchError) Is(target error) bool {
	return target == ErrStackMismatch
}

// UnterminatedBlockError names the block that was auto-closed by Parser.End.
type UnterminatedBlockError struct {
	Block string
}

func (e *UnterminatedBlockError) Error() string {
	return fmt.Sprintf("%v: %s block closed at end of input", ErrUnterminatedBlock, e.Block)
}

// Is matches ErrUnterminatedBlock.
func (e *UnterminatedBlockError) Is(target error) bool {
	return target == ErrUnterminatedBlock
}
