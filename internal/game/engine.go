// internal/game/engine.go
//
// Core game engine for a single Gravitrips game.
// Responsibilities:
//   - Validate the configuration and build an empty board.
//   - Validate and apply moves with gravity placement.
//   - Detect wins by scanning outward from the last placed piece.
//   - Track state transitions: in progress → won/draw.
//
// Notes:
//   - The engine does no I/O and has no internal locking. Wrap it in a
//     store.Session when more than one goroutine can reach it.
//   - A failed ApplyMove leaves every field untouched.
package game

import "fmt"

// directions are scanned in this order; the first completed run wins.
var directions = [...]Coord{
	{Column: 0, Row: 1},  // North
	{Column: 1, Row: 1},  // Northeast
	{Column: 1, Row: 0},  // East
	{Column: 1, Row: -1}, // Southeast
}

// Engine owns the grid, fill levels, turn counter and win record.
type Engine struct {
	cfg  Config
	grid [][]PlayerID // grid[row][column]
	fill []int        // occupied cells per column
	turn int
	win  *winRecord
}

// New validates cfg and returns an engine with an empty board.
func New(cfg Config) (*Engine, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	grid := make([][]PlayerID, cfg.Rows)
	for r := range grid {
		grid[r] = make([]PlayerID, cfg.Columns)
		for c := range grid[r] {
			grid[r][c] = NoPlayer
		}
	}
	return &Engine{
		cfg:  cfg,
		grid: grid,
		fill: make([]int, cfg.Columns),
	}, nil
}

func validate(cfg Config) error {
	switch {
	case cfg.Players < 2:
		return &ConfigurationError{Param: "players", Constraint: "must be at least 2"}
	case cfg.PiecesToWin < 2:
		return &ConfigurationError{Param: "pieces to win", Constraint: "must be at least 2"}
	case cfg.Rows < 1:
		return &ConfigurationError{Param: "rows", Constraint: "must be at least 1"}
	case cfg.Columns < 1:
		return &ConfigurationError{Param: "columns", Constraint: "must be at least 1"}
	case cfg.Players > MaxPlayers:
		return &ConfigurationError{Param: "players", Constraint: fmt.Sprintf("must be at most %d", MaxPlayers)}
	}
	return nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Turn is the number of moves applied so far.
func (e *Engine) Turn() int { return e.turn }

// ActivePlayer is the player whose move is next.
func (e *Engine) ActivePlayer() PlayerID { return PlayerID(e.turn % e.cfg.Players) }

// MovesRemaining is the number of empty cells left.
func (e *Engine) MovesRemaining() int { return e.cfg.Cells() - e.turn }

// FillLevel returns the number of pieces in column, or -1 if column is
// out of range.
func (e *Engine) FillLevel(column int) int {
	if !e.inColumns(column) {
		return -1
	}
	return e.fill[column]
}

// ValidColumns lists the columns that can still take a piece.
// It is empty once the game is over.
func (e *Engine) ValidColumns() []int {
	if e.over() {
		return nil
	}
	cols := make([]int, 0, e.cfg.Columns)
	for c, n := range e.fill {
		if n < e.cfg.Rows {
			cols = append(cols, c)
		}
	}
	return cols
}

// Winner returns the winning player, if any.
func (e *Engine) Winner() (PlayerID, bool) {
	if e.win == nil {
		return NoPlayer, false
	}
	return e.win.player, true
}

// ApplyMove drops the active player's piece into column.
//
// Checks, in order:
//   - the game is not over (GameOverError),
//   - column is on the board (InvalidMoveError wrapping ErrOutOfRange),
//   - column has room (InvalidMoveError wrapping ErrColumnFull).
//
// On success the piece lands on the lowest empty row, win detection runs
// from that cell and the turn advances.
func (e *Engine) ApplyMove(column int) (Move, error) {
	if e.over() {
		return Move{}, &GameOverError{Status: e.Status()}
	}
	if !e.inColumns(column) {
		return Move{}, &InvalidMoveError{Column: column, Err: ErrOutOfRange}
	}
	if e.fill[column] >= e.cfg.Rows {
		return Move{}, &InvalidMoveError{Column: column, Err: ErrColumnFull}
	}

	player := e.ActivePlayer()
	at := Coord{Column: column, Row: e.fill[column]}
	e.grid[at.Row][at.Column] = player
	e.fill[column]++

	if cells := e.findRun(at, player); cells != nil {
		lookup := make(map[Coord]struct{}, len(cells))
		for _, c := range cells {
			lookup[c] = struct{}{}
		}
		e.win = &winRecord{player: player, cells: cells, lookup: lookup}
	}
	e.turn++

	return Move{Coord: at, Player: player, GameOver: e.over()}, nil
}

// Status reports the current outcome. It never mutates the engine.
func (e *Engine) Status() Status {
	switch {
	case e.win != nil:
		cells := make([]Coord, len(e.win.cells))
		copy(cells, e.win.cells)
		return Status{State: StateWon, Player: e.win.player, Cells: cells}
	case e.MovesRemaining() <= 0:
		return Status{State: StateDraw, Player: NoPlayer}
	default:
		return Status{State: StateInProgress, Player: e.ActivePlayer()}
	}
}

// Cell returns the render view of (column, row). Out-of-board
// coordinates read as empty.
func (e *Engine) Cell(column, row int) CellView {
	if !e.inBounds(Coord{Column: column, Row: row}) {
		return CellView{Kind: CellEmpty, Player: NoPlayer}
	}
	p := e.grid[row][column]
	if p == NoPlayer {
		return CellView{Kind: CellEmpty, Player: NoPlayer}
	}
	if e.win != nil {
		if _, ok := e.win.lookup[Coord{Column: column, Row: row}]; ok {
			return CellView{Kind: CellWinning, Player: p}
		}
	}
	return CellView{Kind: CellOwned, Player: p}
}

func (e *Engine) over() bool { return e.win != nil || e.MovesRemaining() <= 0 }

// findRun returns the first run through at, in direction order, that is
// at least PiecesToWin long, or nil.
func (e *Engine) findRun(at Coord, player PlayerID) []Coord {
	for _, d := range directions {
		if run := e.connected(at, d, player); len(run) >= e.cfg.PiecesToWin {
			return run
		}
	}
	return nil
}

// connected returns the run of player's cells through at along d,
// ordered from the negative end to the positive end. at appears once.
func (e *Engine) connected(at, d Coord, player PlayerID) []Coord {
	backward := e.walk(at, Coord{Column: -d.Column, Row: -d.Row}, player)
	forward := e.walk(at, d, player)

	run := make([]Coord, 0, len(backward)+len(forward)-1)
	for i := len(backward) - 1; i >= 0; i-- {
		run = append(run, backward[i])
	}
	return append(run, forward[1:]...)
}

// walk collects cells from at stepping by d while they stay on the board
// and belong to player. at itself is the first element.
func (e *Engine) walk(at, d Coord, player PlayerID) []Coord {
	var cells []Coord
	c := at
	for e.inBounds(c) && e.grid[c.Row][c.Column] == player {
		cells = append(cells, c)
		c = Coord{Column: c.Column + d.Column, Row: c.Row + d.Row}
	}
	return cells
}

func (e *Engine) inColumns(column int) bool { return column >= 0 && column < e.cfg.Columns }

func (e *Engine) inBounds(c Coord) bool {
	return e.inColumns(c.Column) && c.Row >= 0 && c.Row < e.cfg.Rows
}
