// internal/play/runner.go
//
// Text-mode game loop.
// Responsibilities:
//   - Start a session per game and register it in the store.
//   - Alternate between drawing the board and asking the active player for a column.
//   - Turn recoverable errors (bad input, full column) into retry messages.
//   - Announce the result, offer a rematch and print the scoreboard.
//
// End of input and context cancellation end the run quietly with "Bye!".

package play

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/atugushev-dev/gravitrips/internal/game"
	"github.com/atugushev-dev/gravitrips/internal/input"
	"github.com/atugushev-dev/gravitrips/internal/render"
	"github.com/atugushev-dev/gravitrips/internal/store"
)

// InputSource supplies the active player's decisions.
// Column returns a 0-based column; input.ErrInvalidInput asks for a retry.
type InputSource interface {
	Column(ctx context.Context, player string, columns int) (int, error)
	Confirm(ctx context.Context, question string) (bool, error)
}

// Renderer displays boards and messages. It never mutates the engine.
type Renderer interface {
	Board(e *game.Engine) error
	Message(msg string) error
}

// Runner plays games until the players stop or input ends.
type Runner struct {
	Config game.Config
	Store  store.Store
	In     InputSource
	Out    Renderer
}

const rematchPrompt = "Play again? [y/N]> "

// Run plays one or more games. It returns nil on a normal finish, when input
// ends, or when ctx is cancelled; configuration and I/O failures are returned.
func (r *Runner) Run(ctx context.Context) error {
	for {
		s, err := store.NewSession(r.Config)
		if err != nil {
			return err
		}
		if err := r.Store.Save(ctx, s); err != nil {
			return r.stop(err)
		}
		log.Info().Str("session", s.ID).Msg("game started")

		if err := r.playOne(ctx, s); err != nil {
			return r.stop(err)
		}

		again, err := r.In.Confirm(ctx, rematchPrompt)
		if err != nil {
			return r.stop(err)
		}
		if !again {
			return r.scoreboard(ctx)
		}
	}
}

// stop turns end-of-input and cancellation into a goodbye.
func (r *Runner) stop(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return r.Out.Message("\nBye!")
	}
	return err
}

func (r *Runner) playOne(ctx context.Context, s *store.Session) error {
	for {
		var err error
		s.View(func(e *game.Engine) { err = r.Out.Board(e) })
		if err != nil {
			return err
		}

		st := s.Status()
		switch st.State {
		case game.StateWon:
			return r.Out.Message(fmt.Sprintf("\nPlayer %s won!", render.PlayerName(st.Player)))
		case game.StateDraw:
			return r.Out.Message("No moves are left. Withdraw.")
		}

		if err := r.turn(ctx, s, st.Player); err != nil {
			return err
		}
	}
}

// turn asks player for a column until a move is applied.
func (r *Runner) turn(ctx context.Context, s *store.Session, player game.PlayerID) error {
	columns := r.Config.Columns
	invalid := fmt.Sprintf("The input must be a number between 1 and %d. Try again.", columns)

	for {
		col, err := r.In.Column(ctx, render.PlayerName(player), columns)
		if errors.Is(err, input.ErrInvalidInput) {
			if err := r.Out.Message(invalid); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		_, err = s.Apply(col)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, game.ErrColumnFull):
			err = r.Out.Message(fmt.Sprintf("The column %d is full. Choose another one.", col+1))
		case errors.Is(err, game.ErrOutOfRange):
			err = r.Out.Message(invalid)
		default:
			return fmt.Errorf("apply column %d: %w", col+1, err)
		}
		if err != nil {
			return err
		}
	}
}

func (r *Runner) scoreboard(ctx context.Context) error {
	sb, err := store.Tally(ctx, r.Store)
	if err != nil {
		return r.stop(err)
	}
	if sb.Games < 2 {
		return nil
	}

	players := make([]game.PlayerID, 0, len(sb.Wins))
	for p := range sb.Wins {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	if err := r.Out.Message(fmt.Sprintf("\nGames: %d, draws: %d", sb.Games, sb.Draws)); err != nil {
		return err
	}
	for _, p := range players {
		if err := r.Out.Message(fmt.Sprintf("Player %s: %d won", render.PlayerName(p), sb.Wins[p])); err != nil {
			return err
		}
	}
	return nil
}
