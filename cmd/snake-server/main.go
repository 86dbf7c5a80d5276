package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/snake/internal/config"
	"github.com/Mshel/snake/internal/game"
	"github.com/Mshel/snake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
)

const maxConnectionsPerIP = 2

// sessionLimiter caps concurrent sessions per remote host.
type sessionLimiter struct {
	limit int

	mu     sync.Mutex
	active map[string]int
}

func newSessionLimiter(limit int) *sessionLimiter {
	return &sessionLimiter{limit: limit, active: make(map[string]int)}
}

// reserve admits one more session for host unless it is already at the limit.
// It returns the host's session count either way.
func (l *sessionLimiter) reserve(host string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.active[host]
	if n >= l.limit {
		return n, false
	}
	l.active[host] = n + 1
	return n + 1, true
}

func (l *sessionLimiter) release(host string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active[host] <= 1 {
		delete(l.active, host)
		return
	}
	l.active[host]--
}

func (l *sessionLimiter) tracked(host string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.active[host]
	return ok
}

func remoteHost(s ssh.Session) string {
	switch addr := s.RemoteAddr().(type) {
	case *net.TCPAddr:
		return addr.IP.String()
	default:
		return addr.String()
	}
}

func (l *sessionLimiter) middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		host := remoteHost(s)

		count, ok := l.reserve(host)
		if !ok {
			log.Warn("Session refused, too many from host", "host", host, "active", count, "limit", l.limit)
			fmt.Fprintf(s, "You already have %d games running. Close one and try again.\r\n", count)
			s.Close()
			return
		}
		defer l.release(host)

		log.Info("Session opened", "host", host, "active", count)
		next(s)
		log.Info("Session closed", "host", host)
	}
}

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("snake-server", os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}
	logFile, err := cfg.SetupLogging(os.Stderr)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// Check the autopilot once up front; every session loads its own copy.
	if strategy, err := cfg.NewStrategy(); err != nil {
		return err
	} else if closer, ok := strategy.(interface{ Close() }); ok {
		closer.Close()
	}

	scores := cfg.OpenHighScores()
	defer scores.Close()

	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler(cfg, scores)),
			activeterm.Middleware(),
			newSessionLimiter(maxConnectionsPerIP).middleware,
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create ssh server: %w", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	listenErr := make(chan error, 1)

	log.Info("Starting SSH server", "address", cfg.Address)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case <-serverDoneChannel:
	case err := <-listenErr:
		return fmt.Errorf("could not start server: %w", err)
	}

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("could not stop server: %w", err)
	}
	return nil
}

// viewHandler gives every session its own game. Only the high score store is shared.
func viewHandler(cfg config.AppConfig, scores *game.HighScoreService) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		gameID := uuid.NewString()

		gameManager, err := game.NewGameManager(cfg.Game, scores, cfg.NewRand())
		if err != nil {
			log.Error("Could not create game", "game", gameID, "error", err)
			return nil, nil
		}

		autopilot, err := cfg.NewStrategy()
		if err != nil {
			log.Warn("Autopilot unavailable for session", "game", gameID, "error", err)
		}
		if closer, ok := autopilot.(interface{ Close() }); ok {
			go func() {
				<-sshSession.Context().Done()
				closer.Close()
			}()
		}

		log.Info("Game started", "game", gameID, "user", sshSession.User(), "width", pty.Window.Width, "height", pty.Window.Height)
		controllerModel := ui.NewControllerModel(gameManager, autopilot, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
