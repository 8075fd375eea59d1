package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/maumau/game"
)

var (
	ErrUnknownGameID = errors.New("unknown game ID")
	ErrFnGameExists  = func(gameID string) error {
		return fmt.Errorf("game with id %q already exists", gameID)
	}
)

type GameStore interface {
	AddGame(session *game.Session) error
	FindGame(gameID string) *game.Session
	WithGame(gameID string, fn func(*game.Session) error) error
	RemoveGame(gameID string)
	GameIDs() []string
}

// storedGame pairs a session with the lock that serialises its use.
// Sessions are not safe for concurrent use.
type storedGame struct {
	mu      sync.Mutex
	session *game.Session
}

// InMemoryGameStore maps game id to game session
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*storedGame
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]*storedGame{},
	}
}

func (s *InMemoryGameStore) AddGame(session *game.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[session.ID]; exists {
		return ErrFnGameExists(session.ID)
	}
	s.games[session.ID] = &storedGame{session: session}
	return nil
}

// FindGame returns the session with the given id, or nil.
// Use WithGame to act on it.
func (s *InMemoryGameStore) FindGame(gameID string) *game.Session {
	g := s.find(gameID)
	if g == nil {
		return nil
	}
	return g.session
}

// WithGame runs fn while holding the game's lock
func (s *InMemoryGameStore) WithGame(gameID string, fn func(*game.Session) error) error {
	g := s.find(gameID)
	if g == nil {
		return ErrUnknownGameID
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.session)
}

func (s *InMemoryGameStore) RemoveGame(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
}

func (s *InMemoryGameStore) GameIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids
}

func (s *InMemoryGameStore) find(gameID string) *storedGame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[gameID]
}
