package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/atugushev-dev/gravitrips/internal/config"
	"github.com/atugushev-dev/gravitrips/internal/game"
	"github.com/atugushev-dev/gravitrips/internal/input"
	"github.com/atugushev-dev/gravitrips/internal/play"
	"github.com/atugushev-dev/gravitrips/internal/render"
	"github.com/atugushev-dev/gravitrips/internal/store"
	"github.com/atugushev-dev/gravitrips/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	settings, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if lvl, err := zerolog.ParseLevel(settings.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if _, err := game.New(settings.Game); err != nil {
		var cfgErr *game.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Printf("Invalid param: %s %s\n", cfgErr.Param, cfgErr.Constraint)
			return 1
		}
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	log.Debug().
		Int("rows", settings.Game.Rows).
		Int("columns", settings.Game.Columns).
		Int("players", settings.Game.Players).
		Int("pieces_to_win", settings.Game.PiecesToWin).
		Str("ui", settings.UI).
		Msg("starting gravitrips")

	switch settings.UI {
	case config.UITUI:
		err = runTUI(ctx, mem, settings.Game)
	default:
		r := &play.Runner{
			Config: settings.Game,
			Store:  mem,
			In:     input.NewPrompt(os.Stdin, os.Stdout),
			Out:    render.NewText(os.Stdout),
		}
		err = r.Run(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("gravitrips exited")
		return 1
	}
	return 0
}

func runTUI(ctx context.Context, st store.Store, cfg game.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	return tui.New(screen, st, cfg).Run(ctx)
}
