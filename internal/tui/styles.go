package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/leftrightcenter/internal/game"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	PlayerInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	CurrentPlayerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD700")).
				Bold(true)

	EliminatedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true)

	CenterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	dieStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Bold(true)
)

// faceColors gives each die face its own border and glyph colour
var faceColors = map[game.DieFace]lipgloss.Color{
	game.Dot:    lipgloss.Color("#FAFAFA"),
	game.Left:   lipgloss.Color("#45B7D1"),
	game.Right:  lipgloss.Color("#FF6B6B"),
	game.Center: lipgloss.Color("#FFD700"),
}

// renderDie draws a single die face as a small box
func renderDie(face game.DieFace) string {
	color, ok := faceColors[face]
	if !ok {
		color = lipgloss.Color("#626262")
	}
	return dieStyle.
		BorderForeground(color).
		Foreground(color).
		Render(face.Symbol())
}
