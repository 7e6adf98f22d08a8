package config

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atugushev-dev/gravitrips/internal/game"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GRAVITRIPS_ROWS", "GRAVITRIPS_COLUMNS", "GRAVITRIPS_PLAYERS",
		"GRAVITRIPS_PIECES_TO_WIN", "GRAVITRIPS_UI", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	s, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), s.Game)
	assert.Equal(t, UIText, s.UI)
	assert.Equal(t, "warn", s.LogLevel)
	assert.False(t, s.Debug)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRAVITRIPS_ROWS", "8")
	t.Setenv("GRAVITRIPS_COLUMNS", "9")
	t.Setenv("GRAVITRIPS_UI", "TUI")
	t.Setenv("LOG_LEVEL", "info")

	s, err := Load([]string{"--columns", "10", "--players=3", "--pieces-to-win", "5"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, game.Config{Rows: 8, Columns: 10, Players: 3, PiecesToWin: 5}, s.Game)
	assert.Equal(t, UITUI, s.UI)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoadDebugForcesDebugLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "error")

	s, err := Load([]string{"--debug"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, s.Debug)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load([]string{"--ui", "gui"}, io.Discard)
	assert.ErrorIs(t, err, ErrUnknownUI)

	_, err = Load([]string{"--rows", "six"}, io.Discard)
	assert.Error(t, err)

	_, err = Load([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestGetEnvAsIntFallsBack(t *testing.T) {
	t.Setenv("GRAVITRIPS_TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetEnvAsInt("GRAVITRIPS_TEST_INT", 7))

	t.Setenv("GRAVITRIPS_TEST_INT", " 12 ")
	assert.Equal(t, 12, GetEnvAsInt("GRAVITRIPS_TEST_INT", 7))

	t.Setenv("GRAVITRIPS_TEST_INT", "")
	assert.Equal(t, 3, GetEnvAsInt("GRAVITRIPS_TEST_INT", 3))
}
