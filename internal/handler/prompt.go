package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
	"github.com/noah-isme/sma-clubs/pkg/response"
)

// maxLineLength bounds a single answer; longer lines are rejected as incorrect input.
const maxLineLength = 64 * 1024

type option struct {
	key   int
	label string
}

// Prompt owns console input and output and remembers the last printed result.
type Prompt struct {
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger

	last      *models.ResultSet
	lastTitle string
}

// NewPrompt wraps in and out.
func NewPrompt(in io.Reader, out io.Writer, logger *zap.Logger) *Prompt {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prompt{in: bufio.NewReader(in), out: out, logger: logger}
}

// Last returns the most recent result and its title.
func (p *Prompt) Last() (*models.ResultSet, string) {
	return p.last, p.lastTitle
}

// Line prompts for one line of text. io.EOF means the input is exhausted.
func (p *Prompt) Line(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		raw, tooLong, err := p.readLine()
		if err != nil {
			return "", err
		}
		if tooLong {
			p.incorrect(fmt.Sprintf("line longer than %d bytes", maxLineLength))
			continue
		}
		return strings.TrimSpace(raw), nil
	}
}

// readLine returns the next line. Lines over maxLineLength are drained and
// reported as tooLong without being buffered.
func (p *Prompt) readLine() (string, bool, error) {
	var b strings.Builder
	tooLong := false
	for {
		chunk, err := p.in.ReadSlice('\n')
		if !tooLong {
			if b.Len()+len(chunk) > maxLineLength {
				tooLong = true
				b.Reset()
			} else {
				b.Write(chunk)
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && (b.Len() > 0 || tooLong):
			return b.String(), tooLong, nil
		case err != nil:
			return "", false, err
		}
		return b.String(), tooLong, nil
	}
}

// Int prompts until a whole number is entered.
func (p *Prompt) Int(label string) (int64, error) {
	for {
		raw, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return n, nil
		}
		p.incorrect(raw)
	}
}

// OptionalInt prompts for a whole number; an empty line yields zero.
func (p *Prompt) OptionalInt(label string) (int64, error) {
	for {
		raw, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return n, nil
		}
		p.incorrect(raw)
	}
}

// Float prompts until a number is entered.
func (p *Prompt) Float(label string) (float64, error) {
	for {
		raw, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return f, nil
		}
		p.incorrect(raw)
	}
}

// Confirm asks a yes/no question.
func (p *Prompt) Confirm(label string) (bool, error) {
	for {
		raw, err := p.Line(label + " (y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(raw) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.incorrect(raw)
	}
}

// Choose prints a menu and returns the key of the chosen option.
func (p *Prompt) Choose(title string, options ...option) (int, error) {
	for {
		fmt.Fprintf(p.out, "\n== %s ==\n", title)
		for _, o := range options {
			fmt.Fprintf(p.out, "  %d. %s\n", o.key, o.label)
		}
		n, err := p.Int("select")
		if err != nil {
			return 0, err
		}
		for _, o := range options {
			if int64(o.key) == n {
				return o.key, nil
			}
		}
		p.incorrect(strconv.FormatInt(n, 10))
	}
}

// Show prints a query outcome and remembers successful results for export.
func (p *Prompt) Show(title string, result *models.ResultSet, err error) {
	if err != nil {
		response.WriteError(p.out, err)
		return
	}
	if werr := response.WriteTable(p.out, result); werr != nil {
		p.logger.Error("print result", zap.Error(werr))
		return
	}
	response.WriteMessage(p.out, "%d row(s)", result.Len())
	p.last, p.lastTitle = result, title
}

// Done reports the outcome of a write operation.
func (p *Prompt) Done(err error, format string, args ...interface{}) {
	if err != nil {
		response.WriteError(p.out, err)
		return
	}
	response.WriteMessage(p.out, format, args...)
}

// Say prints one line.
func (p *Prompt) Say(format string, args ...interface{}) {
	response.WriteMessage(p.out, format, args...)
}

func (p *Prompt) incorrect(raw string) {
	p.logger.Error("incorrect input", zap.String("input", raw))
	response.WriteMessage(p.out, "incorrect input")
}
