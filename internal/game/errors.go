package game

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks.
var (
	ErrOutOfRange = errors.New("out of range")
	ErrColumnFull = errors.New("column full")
	ErrGameOver   = errors.New("game over")
)

// ConfigurationError reports an invalid construction parameter.
// It is not recoverable: no engine exists when it is returned.
type ConfigurationError struct {
	Param      string
	Constraint string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Constraint)
}

// InvalidMoveError reports a move that was rejected without touching
// the engine state. Err is ErrOutOfRange or ErrColumnFull.
type InvalidMoveError struct {
	Column int
	Err    error
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move in column %d: %v", e.Column, e.Err)
}

func (e *InvalidMoveError) Unwrap() error { return e.Err }

// GameOverError reports a move attempted after the game concluded.
type GameOverError struct {
	Status Status
}

func (e *GameOverError) Error() string {
	if e.Status.State == StateWon {
		return fmt.Sprintf("game over: won by player %d", e.Status.Player)
	}
	return "game over: no moves left"
}

func (e *GameOverError) Is(target error) bool { return target == ErrGameOver }

// IsRecoverable reports whether err is a validation failure the caller can
// answer by retrying or stopping, as opposed to a configuration error.
func IsRecoverable(err error) bool {
	var (
		invalid  *InvalidMoveError
		gameOver *GameOverError
	)
	return errors.As(err, &invalid) || errors.As(err, &gameOver)
}
