// internal/game/types.go
//
// Core type definitions for the Gravitrips engine.
// Defines:
//   - Config: immutable board/player parameters validated by New.
//   - PlayerID, Coord, Move: values produced by ApplyMove.
//   - State/Status: the queryable outcome of a game.
//   - CellKind/CellView: what a renderer sees for a single cell.

package game

import "fmt"

// MaxPlayers bounds the number of players to the size of the
// player-name alphabet (one letter per player).
const MaxPlayers = 26

const (
	defaultRows        = 6
	defaultColumns     = 7
	defaultPlayers     = 2
	defaultPiecesToWin = 4
)

// Config holds the construction parameters of a game.
// It is validated once by New and never changes afterwards.
type Config struct {
	Rows        int // Number of rows; row 0 is the bottom.
	Columns     int // Number of columns.
	Players     int // Number of players taking turns round-robin.
	PiecesToWin int // Minimum run length that wins the game.
}

// DefaultConfig returns the classic 6x7 two-player, four-to-win setup.
func DefaultConfig() Config {
	return Config{
		Rows:        defaultRows,
		Columns:     defaultColumns,
		Players:     defaultPlayers,
		PiecesToWin: defaultPiecesToWin,
	}
}

// Cells is the total number of cells on the board.
func (c Config) Cells() int { return c.Rows * c.Columns }

// PlayerID identifies a player for the duration of a game.
// Valid ids are 0..Players-1.
type PlayerID int

// NoPlayer marks an empty cell.
const NoPlayer PlayerID = -1

// Coord addresses a cell by column and row (row 0 is the bottom).
type Coord struct {
	Column int
	Row    int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Column, c.Row) }

// Move describes a successfully applied move.
type Move struct {
	Coord
	Player   PlayerID // Player whose piece was placed.
	GameOver bool     // True if this move won the game or filled the board.
}

// State is the coarse outcome of a game.
type State int

const (
	StateInProgress State = iota
	StateWon
	StateDraw
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateWon:
		return "won"
	case StateDraw:
		return "draw"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Status is the result of Engine.Status.
//   - StateInProgress: Player is the active player, Cells is nil.
//   - StateWon: Player is the winner, Cells is the winning run.
//   - StateDraw: Player is NoPlayer, Cells is nil.
type Status struct {
	State  State
	Player PlayerID
	Cells  []Coord
}

// Over reports whether the game has concluded.
func (s Status) Over() bool { return s.State != StateInProgress }

// CellKind is the render-contract classification of a cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellOwned
	CellWinning
)

// CellView is what a renderer reads for one cell.
type CellView struct {
	Kind   CellKind
	Player PlayerID // NoPlayer when Kind == CellEmpty.
}

// winRecord is the terminal win state: set once, never cleared.
type winRecord struct {
	player PlayerID
	cells  []Coord
	lookup map[Coord]struct{}
}
