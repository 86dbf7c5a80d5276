package game

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultRowCount      = 20
	DefaultColCount      = 20
	DefaultInitialDelay  = 120 * time.Millisecond
	DefaultMinDelay      = 30 * time.Millisecond
	DefaultSpeedupEvery  = 5
	DefaultSpeedupFactor = 0.9
	minSnakeLength       = 3
)

var ErrInvalidConfig = errors.New("invalid game config")

// Config is the immutable description of a game: grid size and timing.
// It is copied into the GameManager on construction.
type Config struct {
	Rows          int
	Cols          int
	InitialLength int
	InitialDelay  time.Duration
	MinDelay      time.Duration
	SpeedupEvery  int
	SpeedupFactor float64
}

func DefaultConfig() Config {
	return Config{
		Rows:          DefaultRowCount,
		Cols:          DefaultColCount,
		InitialLength: minSnakeLength,
		InitialDelay:  DefaultInitialDelay,
		MinDelay:      DefaultMinDelay,
		SpeedupEvery:  DefaultSpeedupEvery,
		SpeedupFactor: DefaultSpeedupFactor,
	}
}

// Validate reports whether the config can start a game. The snake is laid out
// horizontally from the centre to the left, so the grid must be wide enough
// for it and leave at least one free cell for food.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	}
	if c.InitialLength < minSnakeLength {
		return fmt.Errorf("%w: initial length %d is below %d", ErrInvalidConfig, c.InitialLength, minSnakeLength)
	}
	if c.Cols/2+1 < c.InitialLength {
		return fmt.Errorf("%w: %d columns cannot fit a snake of length %d", ErrInvalidConfig, c.Cols, c.InitialLength)
	}
	if c.Rows*c.Cols <= c.InitialLength {
		return fmt.Errorf("%w: no room for food on a %dx%d grid", ErrInvalidConfig, c.Rows, c.Cols)
	}
	if c.MinDelay <= 0 || c.InitialDelay < c.MinDelay {
		return fmt.Errorf("%w: delays initial=%s min=%s", ErrInvalidConfig, c.InitialDelay, c.MinDelay)
	}
	if c.SpeedupEvery < 1 {
		return fmt.Errorf("%w: speedup interval %d", ErrInvalidConfig, c.SpeedupEvery)
	}
	if c.SpeedupFactor <= 0 || c.SpeedupFactor >= 1 {
		return fmt.Errorf("%w: speedup factor %v must be in (0, 1)", ErrInvalidConfig, c.SpeedupFactor)
	}
	return nil
}

// nextDelay shrinks d by the speedup factor, truncated to whole milliseconds
// and floored at MinDelay.
func (c Config) nextDelay(d time.Duration) time.Duration {
	next := time.Duration(float64(d) * c.SpeedupFactor).Truncate(time.Millisecond)
	if next < c.MinDelay {
		return c.MinDelay
	}
	return next
}
