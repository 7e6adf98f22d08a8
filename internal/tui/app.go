// Package tui is a full-screen terminal front end built on tcell.
//
// Keys:
//
//	left/right, h/l   move the column cursor
//	1-9               jump to a column
//	enter, space      drop a piece in the selected column
//	n                 start a new game once the current one is over
//	esc, q, ctrl-c    quit
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/atugushev-dev/gravitrips/internal/game"
	"github.com/atugushev-dev/gravitrips/internal/render"
	"github.com/atugushev-dev/gravitrips/internal/store"
)

const (
	cursorGlyph = 'v'
	helpLine    = "left/right move  enter drop  n new game  q quit"
)

var playerColors = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorYellow,
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
}

// App owns the screen and the current session.
type App struct {
	screen  tcell.Screen
	store   store.Store
	cfg     game.Config
	session *store.Session
	cursor  int
	message string
}

// New returns an App drawing on screen. The caller owns screen.Init/Fini.
func New(screen tcell.Screen, st store.Store, cfg game.Config) *App {
	return &App{screen: screen, store: st, cfg: cfg}
}

// Run starts a game and processes events until the user quits or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.newGame(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.handle(ctx, ev) {
			return nil
		}
	}
}

func (a *App) newGame(ctx context.Context) error {
	s, err := store.NewSession(a.cfg)
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	log.Info().Str("session", s.ID).Msg("game started")
	a.session = s
	a.cursor = a.cfg.Columns / 2
	a.message = ""
	return nil
}

// handle applies one event and reports whether the app should keep running.
func (a *App) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		return ctx.Err() == nil
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ctx, ev)
	}
	return true
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.move(-1)
	case tcell.KeyRight:
		a.move(1)
	case tcell.KeyEnter:
		a.drop()
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return false
		case r == 'h':
			a.move(-1)
		case r == 'l':
			a.move(1)
		case r == ' ':
			a.drop()
		case r == 'n':
			a.rematch(ctx)
		case r >= '1' && r <= '9':
			if col := int(r - '1'); col < a.cfg.Columns {
				a.cursor = col
				a.message = ""
			}
		}
	}
	return true
}

func (a *App) move(delta int) {
	a.cursor = (a.cursor + delta + a.cfg.Columns) % a.cfg.Columns
	a.message = ""
}

func (a *App) drop() {
	_, err := a.session.Apply(a.cursor)
	switch {
	case err == nil:
		a.message = ""
	case errors.Is(err, game.ErrColumnFull):
		a.message = fmt.Sprintf("The column %d is full. Choose another one.", a.cursor+1)
	case errors.Is(err, game.ErrGameOver):
		a.message = "Game over. Press n for a new game or q to quit."
	default:
		a.message = err.Error()
	}
}

func (a *App) rematch(ctx context.Context) {
	if !a.session.Status().Over() {
		return
	}
	if err := a.newGame(ctx); err != nil {
		log.Error().Err(err).Msg("new game")
		a.message = err.Error()
	}
}

// draw repaints the whole screen:
//
//	row 0          cursor marker
//	row 1          column header
//	rows 2..R+1    grid, top row first
//	row R+2        column footer
//	row R+4        status line
//	row R+5        help
func (a *App) draw() {
	a.screen.Clear()
	w := render.ColumnWidth(a.cfg.Columns)
	header := render.Header(a.cfg.Columns)
	status := a.session.Status()

	if !status.Over() {
		a.put(a.cursor*(w+1), 0, string(cursorGlyph), tcell.StyleDefault.Bold(true))
	}
	a.put(0, 1, header, tcell.StyleDefault)

	a.session.View(func(e *game.Engine) {
		for r := 0; r < a.cfg.Rows; r++ {
			y := 2 + a.cfg.Rows - 1 - r
			for c := 0; c < a.cfg.Columns; c++ {
				v := e.Cell(c, r)
				a.put(c*(w+1), y, render.Glyph(v), cellStyle(v))
			}
		}
	})

	a.put(0, a.cfg.Rows+2, header, tcell.StyleDefault)
	a.put(0, a.cfg.Rows+4, a.statusLine(status), tcell.StyleDefault.Bold(true))
	a.put(0, a.cfg.Rows+5, helpLine, tcell.StyleDefault.Dim(true))
	a.screen.Show()
}

func (a *App) statusLine(st game.Status) string {
	if a.message != "" {
		return a.message
	}
	switch st.State {
	case game.StateWon:
		return fmt.Sprintf("Player %s won!", render.PlayerName(st.Player))
	case game.StateDraw:
		return "No moves are left. Withdraw."
	}
	return fmt.Sprintf("Player %s to move", render.PlayerName(st.Player))
}

func cellStyle(v game.CellView) tcell.Style {
	if v.Kind == game.CellEmpty {
		return tcell.StyleDefault
	}
	style := tcell.StyleDefault.Foreground(playerColors[int(v.Player)%len(playerColors)])
	if v.Kind == game.CellWinning {
		style = style.Reverse(true).Bold(true)
	}
	return style
}

func (a *App) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
