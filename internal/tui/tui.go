// Package tui is the interactive Bubble Tea front end for a game of Left
// Right Center played by several people at one terminal.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/leftrightcenter/internal/game"
)

// Player count bounds offered by the setup screen.
const (
	MinPlayers = game.MinPlayers
	MaxPlayers = 50
)

// Screen identifies which part of the game flow is showing
type Screen int

const (
	ScreenSetup Screen = iota
	ScreenRules
	ScreenNames
	ScreenPlay
	ScreenDice
	ScreenEnd
)

func (s Screen) String() string {
	switch s {
	case ScreenSetup:
		return "setup"
	case ScreenRules:
		return "rules"
	case ScreenNames:
		return "names"
	case ScreenPlay:
		return "play"
	case ScreenDice:
		return "dice"
	case ScreenEnd:
		return "end"
	default:
		return "unknown"
	}
}

// EngineFactory builds a fresh engine for the given roster. It is called
// once per game, so a restart never reuses engine state.
type EngineFactory func(names []string) (*game.Engine, error)

// NewEngineFactory returns a factory that passes opts to every engine.
func NewEngineFactory(opts ...game.Option) EngineFactory {
	return func(names []string) (*game.Engine, error) {
		return game.New(len(names), names, opts...)
	}
}

// Option configures a Model
type Option func(*Model)

// WithPlayerCount sets the initial player count on the setup screen.
func WithPlayerCount(n int) Option {
	return func(m *Model) {
		m.playerCount = clampPlayers(n)
	}
}

// WithDefaultNames pre-fills the name inputs, one per seat.
func WithDefaultNames(names []string) Option {
	return func(m *Model) {
		m.defaultNames = append([]string(nil), names...)
	}
}

// Model is the Bubble Tea model for the whole game flow
type Model struct {
	logger    *log.Logger
	newEngine EngineFactory

	screen      Screen
	rulesReturn Screen

	// Setup and names
	playerCount  int
	defaultNames []string
	names        []string
	nameInput    textinput.Model

	// Play
	engine  *game.Engine
	last    game.TurnResult
	gameLog []string
	err     error

	// UI components
	rulesView viewport.Model

	width    int
	height   int
	quitting bool
}

// NewModel creates the model on the setup screen
func NewModel(logger *log.Logger, factory EngineFactory, opts ...Option) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if factory == nil {
		factory = NewEngineFactory()
	}

	vp := viewport.New(80, 20)
	vp.SetContent(Rules)

	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 32
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))

	m := &Model{
		logger:      logger.WithPrefix("tui"),
		newEngine:   factory,
		screen:      ScreenSetup,
		playerCount: MinPlayers,
		nameInput:   ti,
		rulesView:   vp,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Screen returns the screen currently showing.
func (m *Model) Screen() Screen { return m.screen }

// Engine returns the engine for the game in progress, if any.
func (m *Model) Engine() *game.Engine { return m.engine }

// PlayerCount returns the player count chosen on the setup screen.
func (m *Model) PlayerCount() int { return m.playerCount }

// Log returns the turn-by-turn log of the current game.
func (m *Model) Log() []string { return append([]string(nil), m.gameLog...) }

// Err returns the last error shown to the user.
func (m *Model) Err() error { return m.err }

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rulesView.Width = max(msg.Width-4, 1)
		m.rulesView.Height = max(msg.Height-6, 1)
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.screen {
		case ScreenSetup:
			return m.updateSetup(msg)
		case ScreenRules:
			return m.updateRules(msg)
		case ScreenNames:
			return m.updateNames(msg)
		case ScreenPlay:
			return m.updatePlay(msg)
		case ScreenDice:
			return m.updateDice(msg)
		case ScreenEnd:
			return m.updateEnd(msg)
		}
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenNames:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case ScreenRules:
		m.rulesView, cmd = m.rulesView.Update(msg)
	}
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.logger.Debug("Quitting", "screen", m.screen)
	return m, tea.Quit
}

func (m *Model) setScreen(s Screen) {
	m.logger.Debug("Screen change", "from", m.screen, "to", s)
	m.screen = s
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "down", "-", "h", "j":
		m.playerCount = clampPlayers(m.playerCount - 1)
	case "right", "up", "+", "=", "l", "k":
		m.playerCount = clampPlayers(m.playerCount + 1)
	case "pgdown":
		m.playerCount = clampPlayers(m.playerCount - 10)
	case "pgup":
		m.playerCount = clampPlayers(m.playerCount + 10)
	case "r":
		m.rulesReturn = ScreenSetup
		m.rulesView.GotoTop()
		m.setScreen(ScreenRules)
	case "q", "esc":
		return m.quit()
	case "enter":
		m.err = nil
		m.names = make([]string, 0, m.playerCount)
		m.setScreen(ScreenNames)
		return m, m.prepareNameInput()
	}
	return m, nil
}

func (m *Model) updateRules(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "q":
		m.setScreen(m.rulesReturn)
		return m, nil
	}
	var cmd tea.Cmd
	m.rulesView, cmd = m.rulesView.Update(msg)
	return m, cmd
}

func (m *Model) updateNames(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.nameInput.Blur()
		m.setScreen(ScreenSetup)
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			name = fmt.Sprintf("Player %d", len(m.names)+1)
		}
		m.names = append(m.names, name)
		if len(m.names) < m.playerCount {
			return m, m.prepareNameInput()
		}
		m.nameInput.Blur()
		m.startGame()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// prepareNameInput resets the input for the next seat
func (m *Model) prepareNameInput() tea.Cmd {
	seat := len(m.names)
	m.nameInput.Reset()
	m.nameInput.Placeholder = fmt.Sprintf("Player %d", seat+1)
	if seat < len(m.defaultNames) {
		m.nameInput.SetValue(m.defaultNames[seat])
	}
	return m.nameInput.Focus()
}

func (m *Model) startGame() {
	engine, err := m.newEngine(m.names)
	if err != nil {
		m.logger.Error("Failed to create game", "error", err)
		m.err = err
		m.setScreen(ScreenSetup)
		return
	}
	m.engine = engine
	m.last = game.TurnResult{}
	m.gameLog = nil
	m.logger.Info("Game started", "game", engine.ID(), "players", engine.PlayerCount())
	m.setScreen(ScreenPlay)
}

func (m *Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		result, err := m.engine.PlayTurn()
		if err != nil {
			m.logger.Error("Turn failed", "error", err)
			m.err = err
			return m, nil
		}
		m.last = result
		m.gameLog = append(m.gameLog, game.FormatTurn(result, result.PlayerName))
		m.setScreen(ScreenDice)
	case "r":
		m.rulesReturn = ScreenPlay
		m.rulesView.GotoTop()
		m.setScreen(ScreenRules)
	}
	return m, nil
}

func (m *Model) updateDice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if m.engine.IsGameOver() {
			winner, _ := m.engine.Winner()
			m.logger.Info("Game over", "game", m.engine.ID(), "winner", winner.Name, "turns", m.engine.Turns())
			m.setScreen(ScreenEnd)
			return m, nil
		}
		m.setScreen(ScreenPlay)
	}
	return m, nil
}

func (m *Model) updateEnd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.engine = nil
		m.names = nil
		m.gameLog = nil
		m.err = nil
		m.setScreen(ScreenSetup)
	case "q", "esc":
		return m.quit()
	}
	return m, nil
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case ScreenSetup:
		body = m.viewSetup()
	case ScreenRules:
		body = m.viewRules()
	case ScreenNames:
		body = m.viewNames()
	case ScreenPlay:
		body = m.viewPlay()
	case ScreenDice:
		body = m.viewDice()
	case ScreenEnd:
		body = m.viewEnd()
	}

	return lipgloss.JoinVertical(lipgloss.Left, HeaderStyle.Render("Left Right Center"), "", body)
}

func (m *Model) viewSetup() string {
	var b strings.Builder
	b.WriteString("How many players?\n\n")
	b.WriteString(fmt.Sprintf("  ◀  %s  ▶\n", CurrentPlayerStyle.Render(fmt.Sprintf("%2d", m.playerCount))))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("     %d to %d", MinPlayers, MaxPlayers)))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(InfoStyle.Render("←/→ change • Enter continue • r rules • q quit"))
	return b.String()
}

func (m *Model) viewRules() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		PaneStyle.Render(m.rulesView.View()),
		InfoStyle.Render(fmt.Sprintf("↑/↓ scroll • %3.f%% • Esc back", m.rulesView.ScrollPercent()*100)),
	)
}

func (m *Model) viewNames() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Name for player %d of %d\n\n", len(m.names)+1, m.playerCount))
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	for i, name := range m.names {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  %d. %s", i+1, name)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Enter confirm • blank uses the placeholder • Esc back"))
	return b.String()
}

// renderRoster lists every player with their chips and marks whose turn it is
func (m *Model) renderRoster(highlight int) string {
	var b strings.Builder
	for _, p := range m.engine.Players() {
		marker := "  "
		style := PlayerInfoStyle
		switch {
		case p.Index == highlight:
			marker = "▶ "
			style = CurrentPlayerStyle
		case !p.IsActive():
			style = EliminatedStyle
		}
		b.WriteString(marker)
		b.WriteString(style.Render(fmt.Sprintf("%-20s %2d %s", p.Name, p.Chips, strings.Repeat("●", min(p.Chips, 10)))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(CenterStyle.Render(fmt.Sprintf("Center: %d", m.engine.Center())))
	return PaneStyle.Render(b.String())
}

func (m *Model) viewPlay() string {
	current := m.engine.CurrentPlayer()
	var b strings.Builder
	b.WriteString(m.renderRoster(current.Index))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s's turn: %d %s to roll\n\n", current.Name, current.Dice(), plural(current.Dice(), "die", "dice")))
	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(InfoStyle.Render("Enter roll • r rules • Ctrl+C quit"))
	return b.String()
}

func (m *Model) viewDice() string {
	dice := make([]string, 0, len(m.last.Faces))
	for _, face := range m.last.Faces {
		dice = append(dice, renderDie(face))
	}

	var b strings.Builder
	b.WriteString(m.renderRoster(m.last.Player))
	b.WriteString("\n\n")
	if len(dice) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, dice...))
		b.WriteString("\n")
	}
	b.WriteString(game.FormatTurn(m.last, m.last.PlayerName))
	b.WriteString("\n")
	if m.last.Eliminated {
		b.WriteString(EliminatedStyle.Render(m.last.PlayerName + " is out of chips"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Enter continue"))
	return b.String()
}

func (m *Model) viewEnd() string {
	winner, err := m.engine.Winner()
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(SuccessStyle.Render(fmt.Sprintf("%s wins with %d %s!", winner.Name, winner.Chips, plural(winner.Chips, "chip", "chips"))))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d turns played, %d chips in the center\n\n", m.engine.Turns(), m.engine.Center()))
	b.WriteString(InfoStyle.Render("r play again • q quit"))
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func clampPlayers(n int) int {
	return min(max(n, MinPlayers), MaxPlayers)
}

// Run starts the program on the alternate screen and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
