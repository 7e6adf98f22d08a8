// Package input reads player decisions from a line-oriented reader.
//
// Column numbers are 1-based at this boundary and returned 0-based.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrInvalidInput marks a line that is not a column number on the board.
var ErrInvalidInput = errors.New("invalid input")

type line struct {
	text string
	err  error
}

// Prompt asks questions on w and reads answers from r.
// Reads happen on a background goroutine so a blocked read can be
// abandoned when the context is cancelled.
type Prompt struct {
	r     io.Reader
	w     io.Writer
	once  sync.Once
	lines chan line
}

func NewPrompt(r io.Reader, w io.Writer) *Prompt {
	return &Prompt{r: r, w: w, lines: make(chan line)}
}

// Column asks player for a column in 1..columns and returns it 0-based.
// Malformed or out-of-range answers return an error wrapping
// ErrInvalidInput; end of input returns io.EOF.
func (p *Prompt) Column(ctx context.Context, player string, columns int) (int, error) {
	if _, err := fmt.Fprintf(p.w, "\nPlayer %s, enter a number of column> ", player); err != nil {
		return 0, err
	}
	text, err := p.readLine(ctx)
	if err != nil {
		return 0, err
	}
	col, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || col < 1 || col > columns {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, text)
	}
	return col - 1, nil
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) count as yes.
func (p *Prompt) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := io.WriteString(p.w, question); err != nil {
		return false, err
	}
	text, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (p *Prompt) readLine(ctx context.Context) (string, error) {
	p.once.Do(func() { go p.scan() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (p *Prompt) scan() {
	defer close(p.lines)
	sc := bufio.NewScanner(p.r)
	for sc.Scan() {
		p.lines <- line{text: sc.Text()}
	}
	if err := sc.Err(); err != nil {
		p.lines <- line{err: err}
	}
}
