package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kiosk-idle/internal/core"
	"github.com/vovakirdan/kiosk-idle/internal/registry"
	"github.com/vovakirdan/kiosk-idle/internal/storage"
)

// footerHeight is the number of rows reserved below the game screen.
const footerHeight = 1

// PowerGauge is implemented by games exposing a timed power mode.
type PowerGauge interface {
	PowerFraction() float64
}

var powerLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

// Model is the Bubble Tea model running an idle-screen game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	power      progress.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether the current session's score has been recorded
	err        error
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case nothing is persisted.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if store != nil {
		if aware, ok := game.(registry.HighScoreAware); ok {
			aware.SetHighScoreStore(store)
		}
	}

	bar := progress.New(progress.WithGradient("#FFD75F", "#FF5FAF"), progress.WithoutPercentage())
	bar.Width = max(cfg.ScreenW/4, 10)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		power:      bar,
		inputFrame: core.NewInputFrame(),
	}
}

func gameHeight(screenH int) int {
	return max(screenH-footerHeight, 1)
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if leave := m.keys.MapKeyToFrame(msg, &m.inputFrame); leave {
		m.endSession()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
// The arena is in normalized space, so the session survives a resize.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width
	m.power.Width = max(msg.Width/4, 10)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.saveScore()
		// Fresh seed for a new session
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.inputFrame.Set(core.ActionConfirm)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config)
}

// Err returns the error from releasing the game, if any.
func (m Model) Err() error {
	return m.err
}

// saveScore records the session score once.
func (m *Model) saveScore() {
	if m.scoreSaved {
		return
	}
	state := m.game.State()
	if state.Score > 0 && m.store != nil {
		//nolint:errcheck // Best-effort save, the kiosk keeps running regardless
		m.store.SaveScore(m.game.ID(), state.Score)
	}
	m.scoreSaved = true
}

// endSession records the score and releases the game.
func (m *Model) endSession() {
	m.saveScore()
	if d, ok := m.game.(registry.Disposer); ok {
		if err := d.Dispose(); err != nil {
			m.err = err
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".kiosk-idle", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, the kiosk keeps running regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// footer renders the help line, with the power gauge while power mode runs.
func (m Model) footer() string {
	helpView := m.help.View(m.keys)
	gauge, ok := m.game.(PowerGauge)
	if !ok {
		return helpView
	}
	frac := gauge.PowerFraction()
	if frac <= 0 {
		return helpView
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		powerLabel.Render("POWER "), m.power.ViewAs(frac), "  ", helpView)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.footer()
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
