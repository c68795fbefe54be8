// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/bizround/gameserver/network"
)

// Session is one live client connection. Once the client has joined a game it
// carries the player and game bindings used to route state broadcasts.
type Session struct {
	ID         string
	Conn       network.Connection
	PlayerID   uint
	GameID     uint
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Bind attaches the session to a player in a game.
func (s *Session) Bind(playerID, gameID uint) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerID = playerID
	s.GameID = gameID
}

// Game returns the game this session observes, zero when unbound.
func (s *Session) Game() uint {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.GameID
}

// Player returns the bound player ID, zero when unbound.
func (s *Session) Player() uint {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.PlayerID
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.Touch()
	return s.Conn.Send(msgID, data)
}

// Touch marks the session as recently active.
func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.LastActive = time.Now()
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Session管理器
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

// GetByGameID returns every session observing the given game.
func (m *Manager) GetByGameID(gameID uint) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if session.Game() == gameID {
			result = append(result, session)
		}
	}
	return result
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// RemoveStale closes and drops sessions idle for longer than maxIdle,
// returning how many were removed.
func (m *Manager) RemoveStale(maxIdle time.Duration) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxIdle)
	for id, session := range m.sessions {
		session.mutex.RLock()
		stale := session.LastActive.Before(cutoff)
		session.mutex.RUnlock()
		if stale {
			session.Conn.Close()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
