// internal/config/config.go
//
// Runtime settings for the gravitrips binary.
//
// Sources, highest precedence first:
//   1. Command-line flags (--rows, --columns, --players, --pieces-to-win, --ui, --debug).
//   2. Environment variables (GRAVITRIPS_ROWS, GRAVITRIPS_COLUMNS, GRAVITRIPS_PLAYERS,
//      GRAVITRIPS_PIECES_TO_WIN, GRAVITRIPS_UI, LOG_LEVEL).
//   3. A .env file, loaded into the environment by main via godotenv.
//   4. Built-in defaults (game.DefaultConfig, text UI, "warn" log level).
//
// Board parameters are not validated here; game.New owns those rules.

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/atugushev-dev/gravitrips/internal/game"
)

// Front ends selectable with --ui.
const (
	UIText = "text"
	UITUI  = "tui"
)

// ErrUnknownUI is returned when --ui names no known front end.
var ErrUnknownUI = errors.New("unknown ui")

// Settings is everything main needs to start a run.
type Settings struct {
	Game     game.Config
	UI       string
	LogLevel string
	Debug    bool
}

// Load reads the environment, then parses args (without the program name)
// on top of it. Usage and parse errors go to output.
func Load(args []string, output io.Writer) (Settings, error) {
	def := game.DefaultConfig()
	s := Settings{
		Game: game.Config{
			Rows:        GetEnvAsInt("GRAVITRIPS_ROWS", def.Rows),
			Columns:     GetEnvAsInt("GRAVITRIPS_COLUMNS", def.Columns),
			Players:     GetEnvAsInt("GRAVITRIPS_PLAYERS", def.Players),
			PiecesToWin: GetEnvAsInt("GRAVITRIPS_PIECES_TO_WIN", def.PiecesToWin),
		},
		UI:       GetEnv("GRAVITRIPS_UI", UIText),
		LogLevel: GetEnv("LOG_LEVEL", "warn"),
	}

	fs := flag.NewFlagSet("gravitrips", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&s.Game.Rows, "rows", s.Game.Rows, "number of rows")
	fs.IntVar(&s.Game.Columns, "columns", s.Game.Columns, "number of columns")
	fs.IntVar(&s.Game.Players, "players", s.Game.Players, "number of players")
	fs.IntVar(&s.Game.PiecesToWin, "pieces-to-win", s.Game.PiecesToWin, "pieces in a row needed to win")
	fs.StringVar(&s.UI, "ui", s.UI, "front end: text or tui")
	fs.BoolVar(&s.Debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	s.UI = strings.ToLower(strings.TrimSpace(s.UI))
	if s.UI != UIText && s.UI != UITUI {
		return Settings{}, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownUI, s.UI, UIText, UITUI)
	}
	if s.Debug {
		s.LogLevel = "debug"
	}
	return s, nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}
	return value
}
