package notetex

import (
	"bytes"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput checks a whole document with the rules Convert applies
// line by line, so a buffered caller can reject it before any output.
func ValidateInput(src []byte) error {
	var v validator
	for len(src) > 0 {
		n := bytes.IndexByte(src, '\n') + 1
		if n == 0 {
			n = len(src)
		}
		if err := v.addLine(string(src[:n])); err != nil {
			return err
		}
		src = src[n:]
	}
	return nil
}

// validator rejects invalid UTF-8 and binary input one line at a time.
type validator struct {
	total   int
	control int
}

func (v *validator) addLine(line string) error {
	if !utf8.ValidString(line) {
		return ErrInvalidUTF8
	}
	for _, r := range line {
		if r == 0 {
			return ErrBinaryInput
		}
		v.total += utf8.RuneLen(r)
		if isControlRune(r) {
			v.control++
		}
	}
	if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	if r < 0x20 || r == 0x7F {
		return true
	}
	return false
}
