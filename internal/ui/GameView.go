package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/lipgloss"
)

var (
	voidColor = lipgloss.Color("233")

	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(0, 0)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	bodyCell = lipgloss.NewStyle().Background(voidColor).Foreground(lipgloss.Color("46")).Render("██")
	foodCell = lipgloss.NewStyle().Background(voidColor).Foreground(lipgloss.Color("196")).Render("● ")
	voidCell = lipgloss.NewStyle().Background(voidColor).Render("  ")

	headStyle = lipgloss.NewStyle().Background(lipgloss.Color("46")).Foreground(lipgloss.Color("0")).Bold(true)

	headRunes = map[game.Direction]rune{
		game.Up:    '▲',
		game.Down:  '▼',
		game.Left:  '◀',
		game.Right: '▶',
	}
)

func (m ControllerModel) View() string {
	snap := m.GameManager.Snapshot()

	sections := []string{
		m.renderStatus(snap),
		mapViewStyle.Render(renderMap(snap)),
	}
	switch snap.Status {
	case game.Paused:
		sections = append(sections, renderPausedBanner())
	case game.GameOver:
		sections = append(sections, renderGameOverPanel(snap))
	}
	sections = append(sections, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.ScreenWidth <= 0 || m.ScreenHeight <= 0 {
		return content
	}
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m ControllerModel) renderStatus(snap game.Snapshot) string {
	status := fmt.Sprintf("Score: %d  High: %d", snap.Score, snap.HighScore)
	if m.Autopilot != nil {
		status += "  [autopilot]"
	}
	return statusStyle.Render(status)
}

// renderMap draws the grid two terminal columns per cell so cells look square.
func renderMap(snap game.Snapshot) string {
	body := make(map[game.Cell]struct{}, len(snap.Snake))
	for _, c := range snap.Snake {
		body[c] = struct{}{}
	}

	var sb strings.Builder
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			cell := game.Cell{Row: row, Col: col}
			switch {
			case len(snap.Snake) > 0 && cell == snap.Head():
				sb.WriteString(headStyle.Render(string(headRunes[snap.Direction]) + " "))
			case hasCell(body, cell):
				sb.WriteString(bodyCell)
			case snap.HasFood && cell == snap.Food:
				sb.WriteString(foodCell)
			default:
				sb.WriteString(voidCell)
			}
		}
		if row < snap.Rows-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func hasCell(cells map[game.Cell]struct{}, c game.Cell) bool {
	_, ok := cells[c]
	return ok
}
