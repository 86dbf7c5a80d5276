package game

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "smallest grid", mutate: func(c *Config) { c.Rows, c.Cols = 1, 4 }},
		{name: "empty grid", mutate: func(c *Config) { c.Rows = 0 }, wantErr: true},
		{name: "snake does not fit", mutate: func(c *Config) { c.Cols = 3 }, wantErr: true},
		{name: "no room for food", mutate: func(c *Config) { c.Rows, c.Cols = 1, 3 }, wantErr: true},
		{name: "short snake", mutate: func(c *Config) { c.InitialLength = 2 }, wantErr: true},
		{name: "zero min delay", mutate: func(c *Config) { c.MinDelay = 0 }, wantErr: true},
		{name: "initial below min", mutate: func(c *Config) { c.InitialDelay = 10 * time.Millisecond }, wantErr: true},
		{name: "zero speedup interval", mutate: func(c *Config) { c.SpeedupEvery = 0 }, wantErr: true},
		{name: "factor of one", mutate: func(c *Config) { c.SpeedupFactor = 1 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNextDelay(t *testing.T) {
	cfg := DefaultConfig()
	delay := cfg.InitialDelay
	want := []time.Duration{108, 97, 87, 78, 70, 63, 56, 50, 45, 40, 36, 32, 30, 30}
	for i, w := range want {
		delay = cfg.nextDelay(delay)
		if delay != w*time.Millisecond {
			t.Fatalf("step %d: expected %dms, got %s", i, w, delay)
		}
	}
}
