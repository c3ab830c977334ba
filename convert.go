package notetex

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []Option
}

// Convert reads notes markup from Reader and writes a complete LaTeX
// document to Writer. Every call uses a fresh Parser.
func Convert(req ConvertRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("convert: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("convert: writer is nil")
	}
	reader := readerPool.Get().(*bufio.Reader)
	reader.Reset(req.Reader)
	defer func() {
		reader.Reset(nil)
		readerPool.Put(reader)
	}()

	c := converter{
		parser: NewParser(req.Options...),
		w:      bufio.NewWriter(req.Writer),
	}
	lineNo := 0
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			if ferr := c.feed(line); ferr != nil {
				return fmt.Errorf("convert: line %d: %w", lineNo, ferr)
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("convert: read: %w", err)
		}
	}
	if err := c.finish(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("convert: write: %w", err)
	}
	return nil
}

// ConvertString converts a whole document held in memory. The document is
// validated before any output is produced.
func ConvertString(src string, opts ...Option) (string, error) {
	if err := ValidateInput([]byte(src)); err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	var out strings.Builder
	err := Convert(ConvertRequest{
		Reader:  strings.NewReader(src),
		Writer:  &out,
		Options: opts,
	})
	return out.String(), err
}

type converter struct {
	parser  *Parser
	w       *bufio.Writer
	check   validator
	lines   int
	started bool
}

func (c *converter) feed(line string) error {
	if err := c.check.addLine(line); err != nil {
		return err
	}
	first := c.lines == 0
	c.lines++
	if !c.started {
		// Only a document opening with `$` has a head.
		hasHead := !first || strings.HasPrefix(line, "$")
		if hasHead && c.parser.ParseHeadLine(line) {
			return nil
		}
		if err := c.start(); err != nil {
			return err
		}
	}
	out, err := c.parser.ParseLine(line)
	if err != nil {
		return err
	}
	return c.writeLine(out)
}

func (c *converter) start() error {
	c.started = true
	return c.writeLine(c.parser.Start())
}

func (c *converter) finish() error {
	if !c.started {
		if err := c.start(); err != nil {
			return err
		}
	}
	out, err := c.parser.End()
	if err != nil {
		return err
	}
	return c.writeLine(out)
}

func (c *converter) writeLine(s string) error {
	if _, err := c.w.WriteString(s); err != nil {
		return err
	}
	return c.w.WriteByte('\n')
}
