// internal/render/text.go
//
// Plain-text rendering of a game board.
//
// Layout (6x7 example, column numbers are 1-based):
//
//	1 2 3 4 5 6 7
//	. . . . . . .
//	. . . . . . .
//	. . . . . . .
//	. . B B B . .
//	. A A A A . .
//	1 2 3 4 5 6 7
//
// Winning cells are drawn as "*" once the game is won.

package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atugushev-dev/gravitrips/internal/game"
)

const (
	EmptyGlyph  = "."
	WinGlyph    = "*"
	clearScreen = "\x1b[H\x1b[2J"
)

const playerNames = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// PlayerName maps a player id to its letter ("A" for 0).
func PlayerName(p game.PlayerID) string {
	if p < 0 || int(p) >= len(playerNames) {
		return "?"
	}
	return playerNames[p : p+1]
}

// Glyph maps a cell to its one-character representation.
func Glyph(v game.CellView) string {
	switch v.Kind {
	case game.CellWinning:
		return WinGlyph
	case game.CellOwned:
		return PlayerName(v.Player)
	default:
		return EmptyGlyph
	}
}

// ColumnWidth is the printed width of one column for a board with
// the given number of columns.
func ColumnWidth(columns int) int { return len(strconv.Itoa(columns)) }

// Header returns the 1-based, zero-padded column numbers.
func Header(columns int) string {
	w := ColumnWidth(columns)
	labels := make([]string, columns)
	for c := range labels {
		labels[c] = fmt.Sprintf("%0*d", w, c+1)
	}
	return strings.Join(labels, " ")
}

// Grid renders the board top row first, framed by column headers.
func Grid(e *game.Engine) string {
	cfg := e.Config()
	w := ColumnWidth(cfg.Columns)
	header := Header(cfg.Columns)

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	cells := make([]string, cfg.Columns)
	for r := cfg.Rows - 1; r >= 0; r-- {
		for c := range cells {
			cells[c] = center(Glyph(e.Cell(c, r)), w)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	b.WriteString(header)
	b.WriteByte('\n')
	return b.String()
}

// center pads s to width w, putting the odd space on the right.
func center(s string, w int) string {
	pad := w - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// Text writes boards and messages to a terminal-like writer.
type Text struct {
	w     io.Writer
	clear bool
}

// NewText returns a renderer that clears the screen before each board.
func NewText(w io.Writer) *Text { return &Text{w: w, clear: true} }

// NewPlainText returns a renderer that never emits escape sequences.
func NewPlainText(w io.Writer) *Text { return &Text{w: w} }

// Board clears the screen (if enabled) and draws the grid.
func (t *Text) Board(e *game.Engine) error {
	out := Grid(e)
	if t.clear {
		out = clearScreen + out
	}
	_, err := io.WriteString(t.w, out)
	return err
}

// Message prints msg on its own line.
func (t *Text) Message(msg string) error {
	_, err := fmt.Fprintln(t.w, msg)
	return err
}
