package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Mshel/snake/internal/config"
	"github.com/Mshel/snake/internal/game"
	"github.com/Mshel/snake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("snake", os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	// Log lines would tear the alt screen, so they go to the log file or nowhere.
	logFile, err := cfg.SetupLogging(io.Discard)
	if err != nil {
		return err
	}
	defer logFile.Close()

	scores := cfg.OpenHighScores()
	defer scores.Close()

	autopilot, err := cfg.NewStrategy()
	if err != nil {
		return err
	}
	if closer, ok := autopilot.(interface{ Close() }); ok {
		defer closer.Close()
	}

	gameManager, err := game.NewGameManager(cfg.Game, scores, cfg.NewRand())
	if err != nil {
		return err
	}

	log.Info("Starting game", "rows", cfg.Game.Rows, "cols", cfg.Game.Cols, "store", cfg.StoreDriver)
	p := tea.NewProgram(ui.NewControllerModel(gameManager, autopilot, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	log.Info("Game closed", "score", gameManager.Score(), "high_score", gameManager.HighScore())
	return nil
}
