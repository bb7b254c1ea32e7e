package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kiosk-idle/internal/core"
	"github.com/vovakirdan/kiosk-idle/internal/storage"
)

// stubGame counts calls and scores a point per running step.
type stubGame struct {
	score      int
	running    bool
	resets     int
	disposed   bool
	disposeErr error
	store      core.HighScoreStore
	power      float64
	lastSize   [2]int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.score = 0
	g.running = false
	g.lastSize = [2]int{cfg.ScreenW, cfg.ScreenH}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionConfirm) {
		g.running = true
	}
	if g.running {
		g.score++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, Running: g.running}
}

func (g *stubGame) SetHighScoreStore(store core.HighScoreStore) { g.store = store }
func (g *stubGame) PowerFraction() float64                      { return g.power }

func (g *stubGame) Dispose() error {
	g.disposed = true
	return g.disposeErr
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 15, TickRate: 30, Seed: 1}
}

func TestNewModelInjectsStore(t *testing.T) {
	game := &stubGame{}
	store := openStore(t)
	NewModel(game, store, testRuntime())
	if game.store == nil {
		t.Fatal("store not injected")
	}

	bare := &stubGame{}
	NewModel(bare, nil, testRuntime())
	if bare.store != nil {
		t.Fatal("nil store must not be injected")
	}
}

func TestGameGetsScreenMinusFooter(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, testRuntime())
	m.Init()
	if game.lastSize != [2]int{40, 14} {
		t.Errorf("game size = %v, want [40 14]", game.lastSize)
	}
	if m.screen.Height() != 14 {
		t.Errorf("screen height = %d, want 14", m.screen.Height())
	}
}

func step(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestQuitSavesScoreAndDisposes(t *testing.T) {
	game := &stubGame{}
	store := openStore(t)
	m := NewModel(game, store, testRuntime())
	m.Init()

	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	for range 5 {
		m = step(m, TickMsg{})
	}
	if game.score != 5 {
		t.Fatalf("score = %d, want 5", game.score)
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !game.disposed {
		t.Error("game not disposed on quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 5 {
		t.Errorf("saved scores = %+v, want one run of 5", scores)
	}
}

func TestQuitKeepsDisposeError(t *testing.T) {
	diskFull := errors.New("disk full")
	game := &stubGame{disposeErr: diskFull}
	m := NewModel(game, nil, testRuntime())
	m.Init()

	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Err() != nil {
		t.Fatalf("Err() = %v before quitting", m.Err())
	}
	next, _ := m.Update(runeKey('q'))
	if err := next.(Model).Err(); !errors.Is(err, diskFull) {
		t.Errorf("Err() = %v, want %v", err, diskFull)
	}
}

func TestRestartRecordsRunAndStartsFresh(t *testing.T) {
	game := &stubGame{}
	store := openStore(t)
	m := NewModel(game, store, testRuntime())
	m.Init()

	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(m, TickMsg{})
	m = step(m, TickMsg{})
	m = step(m, runeKey('r'))
	m = step(m, TickMsg{})

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if !game.running || game.score != 1 {
		t.Errorf("after restart running=%v score=%d, want running with 1", game.running, game.score)
	}

	scores, _ := store.TopScores("stub", 10)
	if len(scores) != 1 || scores[0].Score != 2 {
		t.Errorf("saved scores = %+v, want one run of 2", scores)
	}
	if m.scoreSaved {
		t.Error("new session should not be marked saved")
	}
}

func TestZeroScoreNotSaved(t *testing.T) {
	game := &stubGame{}
	store := openStore(t)
	m := NewModel(game, store, testRuntime())
	m.Init()
	m.Update(runeKey('q'))

	scores, _ := store.TopScores("stub", 10)
	if len(scores) != 0 {
		t.Errorf("saved %d runs for a zero score", len(scores))
	}
}

func TestFooterShowsPowerGauge(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, testRuntime())
	if strings.Contains(m.footer(), "POWER") {
		t.Error("gauge shown while power is off")
	}
	game.power = 0.5
	if !strings.Contains(m.footer(), "POWER") {
		t.Error("gauge missing while power is on")
	}
}

func TestResizeKeepsSession(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, testRuntime())
	m.Init()
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", game.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
}
