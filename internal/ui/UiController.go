package ui

import (
	"time"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const FrameRate = 60

// FrameMsg paces the game loop. Each one advances the game by the time since
// the previous frame.
type FrameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/FrameRate, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// ControllerModel is the bubbletea model for one game. Input, simulation and
// rendering all run on the program's update loop, so the GameManager needs no
// locking.
type ControllerModel struct {
	GameManager *game.GameManager
	// Autopilot steers the snake when set.
	Autopilot game.Strategy

	ScreenWidth  int
	ScreenHeight int

	keys      keyMap
	help      help.Model
	lastFrame time.Time
}

func NewControllerModel(gameManager *game.GameManager, autopilot game.Strategy, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		GameManager:  gameManager,
		Autopilot:    autopilot,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		keys:         newKeyMap(),
		help:         help.New(),
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return frameTick()
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		now := time.Time(msg)
		var elapsed time.Duration
		if !m.lastFrame.IsZero() {
			elapsed = now.Sub(m.lastFrame)
		}
		m.lastFrame = now

		if m.Autopilot != nil && m.GameManager.Status() == game.Running {
			m.GameManager.SetDirection(m.Autopilot.NextDirection(m.GameManager.Snapshot()))
		}
		m.GameManager.Tick(elapsed)
		return m, frameTick()
	}

	return m, nil
}

func (m ControllerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	gm := m.GameManager

	switch {
	case key.Matches(msg, m.keys.Quit):
		log.Debug("Quit requested", "score", gm.Score())
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		gm.SetDirection(game.Up)
	case key.Matches(msg, m.keys.Down):
		gm.SetDirection(game.Down)
	case key.Matches(msg, m.keys.Left):
		gm.SetDirection(game.Left)
	case key.Matches(msg, m.keys.Right):
		gm.SetDirection(game.Right)
	case key.Matches(msg, m.keys.Pause):
		gm.TogglePause()
	case key.Matches(msg, m.keys.Restart):
		log.Debug("Restarting game", "score", gm.Score())
		gm.Restart()
	}

	return m, nil
}
