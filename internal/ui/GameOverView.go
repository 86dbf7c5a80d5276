package ui

import (
	"fmt"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/lipgloss"
)

var (
	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Padding(0, 2)

	gameOverTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("9")).
				Align(lipgloss.Center)

	gameOverPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color("9")).
				Padding(0, 3).
				Align(lipgloss.Center)

	hintStyle = lipgloss.NewStyle().Faint(true)
)

func renderPausedBanner() string {
	return pausedStyle.Render("PAUSED")
}

// renderGameOverPanel shows the final score under the board.
func renderGameOverPanel(snap game.Snapshot) string {
	title := "GAME OVER"
	if !snap.HasFood {
		title = "BOARD CLEARED"
	}

	stats := fmt.Sprintf("Final score: %d\nHigh score: %d", snap.Score, snap.HighScore)
	content := lipgloss.JoinVertical(lipgloss.Center,
		gameOverTitleStyle.Render(title),
		stats,
		hintStyle.Render("r to restart, q to quit"),
	)
	return gameOverPanelStyle.Render(content)
}
