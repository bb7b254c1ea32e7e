package core

import "sync"

// HighScoreStore persists the single best score of a game.
// Implementations must only ever raise the stored value.
type HighScoreStore interface {
	LoadHighScore(gameID string) (int, error)
	SaveHighScore(gameID string, score int) error
}

// MemoryHighScores is an in-process HighScoreStore for tests and headless runs.
type MemoryHighScores struct {
	mu     sync.Mutex
	scores map[string]int
	saves  int
}

// NewMemoryHighScores creates an empty in-memory store.
func NewMemoryHighScores() *MemoryHighScores {
	return &MemoryHighScores{scores: make(map[string]int)}
}

// LoadHighScore returns the stored score, 0 if none.
func (m *MemoryHighScores) LoadHighScore(gameID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[gameID], nil
}

// SaveHighScore stores score if it beats the current value.
func (m *MemoryHighScores) SaveHighScore(gameID string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if score > m.scores[gameID] {
		m.scores[gameID] = score
	}
	return nil
}

// Saves returns how many times SaveHighScore was called.
func (m *MemoryHighScores) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
