package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/log"
)

const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	AutopilotDefault = "default"

	envPrefix = "SNAKE_"

	defaultSQLitePath = "highscores.db"
)

// AppConfig is everything a front end needs to start: the game itself plus
// storage, autopilot, logging and server settings.
type AppConfig struct {
	Game game.Config

	HighScorePath string
	StoreDriver   string
	StoreDSN      string

	// Autopilot is empty, "default", or the path of a Lua strategy script.
	Autopilot string
	// Seed 0 means a random seed.
	Seed uint64

	LogFile  string
	LogLevel string

	Address     string
	HostKeyPath string
}

func Default() AppConfig {
	return AppConfig{
		Game:          game.DefaultConfig(),
		HighScorePath: "highscore.txt",
		StoreDriver:   StoreFile,
		LogLevel:      "info",
		Address:       "0.0.0.0:6996",
		HostKeyPath:   ".ssh/id_ed25519",
	}
}

// Load layers environment variables (SNAKE_*) and then command-line flags over
// the defaults, and validates the result.
func Load(name string, args []string, getenv func(string) string) (AppConfig, error) {
	cfg := Default()
	if err := cfg.applyEnv(getenv); err != nil {
		return AppConfig{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVar(&cfg.Game.Rows, "rows", cfg.Game.Rows, "grid rows")
	fs.IntVar(&cfg.Game.Cols, "cols", cfg.Game.Cols, "grid columns")
	fs.DurationVar(&cfg.Game.InitialDelay, "delay", cfg.Game.InitialDelay, "initial time per move")
	fs.DurationVar(&cfg.Game.MinDelay, "min-delay", cfg.Game.MinDelay, "fastest time per move")
	fs.IntVar(&cfg.Game.SpeedupEvery, "speedup-every", cfg.Game.SpeedupEvery, "points between speed-ups")
	fs.Float64Var(&cfg.Game.SpeedupFactor, "speedup-factor", cfg.Game.SpeedupFactor, "delay multiplier per speed-up")
	fs.StringVar(&cfg.HighScorePath, "highscore", cfg.HighScorePath, "high score file")
	fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "high score store: file, sqlite or postgres")
	fs.StringVar(&cfg.StoreDSN, "dsn", cfg.StoreDSN, "database path or connection string")
	fs.StringVar(&cfg.Autopilot, "autopilot", cfg.Autopilot, `"default" or a Lua strategy script`)
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for random")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Address, "addr", cfg.Address, "ssh listen address")
	fs.StringVar(&cfg.HostKeyPath, "host-key", cfg.HostKeyPath, "ssh host key path")
	if err := fs.Parse(args); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse flags: %w", err)
	}
	if cfg.StoreDriver == StoreSQLite && cfg.StoreDSN == "" {
		cfg.StoreDSN = defaultSQLitePath
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv(getenv func(string) string) error {
	var errs []error
	str := func(key string, dst *string) {
		if v := getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := getenv(envPrefix + key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v := getenv(envPrefix + key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				return
			}
			*dst = f
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v := getenv(envPrefix + key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				return
			}
			*dst = d
		}
	}

	num("ROWS", &c.Game.Rows)
	num("COLS", &c.Game.Cols)
	dur("DELAY", &c.Game.InitialDelay)
	dur("MIN_DELAY", &c.Game.MinDelay)
	num("SPEEDUP_EVERY", &c.Game.SpeedupEvery)
	float("SPEEDUP_FACTOR", &c.Game.SpeedupFactor)
	str("HIGHSCORE_PATH", &c.HighScorePath)
	str("STORE", &c.StoreDriver)
	str("STORE_DSN", &c.StoreDSN)
	str("AUTOPILOT", &c.Autopilot)
	str("LOG_FILE", &c.LogFile)
	str("LOG_LEVEL", &c.LogLevel)
	str("ADDR", &c.Address)
	str("PRIVATE_KEY_PATH", &c.HostKeyPath)
	if v := getenv(envPrefix + "SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", envPrefix, err))
		} else {
			c.Seed = seed
		}
	}

	return errors.Join(errs...)
}

func (c AppConfig) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	switch c.StoreDriver {
	case StoreFile:
		if c.HighScorePath == "" {
			return errors.New("high score path must not be empty")
		}
	case StoreSQLite, StorePostgres:
		if c.StoreDSN == "" {
			return fmt.Errorf("store %q needs a dsn", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown high score store %q", c.StoreDriver)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// OpenHighScores builds the high score service. A database that cannot be
// opened is not fatal: the game runs with a store-less service instead.
func (c AppConfig) OpenHighScores() *game.HighScoreService {
	var (
		store game.ScoreStore
		err   error
	)
	switch c.StoreDriver {
	case StoreSQLite:
		store, err = game.NewSQLStore(game.DriverSQLite, c.StoreDSN)
	case StorePostgres:
		store, err = game.NewSQLStore(game.DriverPostgres, c.StoreDSN)
	default:
		store = game.NewFileStore(c.HighScorePath)
	}
	if err != nil {
		log.Warn("High score store unavailable, scores will not be kept", "store", c.StoreDriver, "error", err)
		return game.NewHighScoreService(nil)
	}
	log.Debug("High score store ready", "store", c.StoreDriver)
	return game.NewHighScoreService(store)
}

// NewStrategy returns the configured autopilot, or nil when there is none.
// Each game needs its own: Lua strategies are not safe to share.
func (c AppConfig) NewStrategy() (game.Strategy, error) {
	switch {
	case c.Autopilot == "":
		return nil, nil
	case c.Autopilot == AutopilotDefault:
		return &game.DefaultStrategy{}, nil
	case strings.HasSuffix(c.Autopilot, ".lua"):
		strategy, err := game.LoadLuaStrategy(c.Autopilot)
		if err != nil {
			return nil, err
		}
		return strategy, nil
	default:
		return nil, fmt.Errorf("unknown autopilot %q", c.Autopilot)
	}
}

// NewRand returns the game's random source, seeded from Seed when set.
func (c AppConfig) NewRand() *rand.Rand {
	if c.Seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed))
}

// SetupLogging points the package logger at w, or at LogFile when set. The
// returned closer releases the log file.
func (c AppConfig) SetupLogging(w io.Writer) (io.Closer, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	if c.LogFile == "" {
		log.SetOutput(w)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
