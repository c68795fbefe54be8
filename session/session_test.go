package session

import (
	"net"
	"testing"
	"time"

	"github.com/bizround/gameserver/network"
)

// MockConnection records sends and closes without a real socket.
type MockConnection struct {
	sent   [][]byte
	closed bool
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.sent = append(m.sent, data)
	return nil
}

func (m *MockConnection) Close() error {
	m.closed = true
	return nil
}

func (m *MockConnection) RemoteAddr() net.Addr { return nil }

func (m *MockConnection) SetHeartbeat(interval time.Duration) {}

func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestSession_Bind(t *testing.T) {
	session := NewSession("s1", &MockConnection{})

	if session.Player() != 0 || session.Game() != 0 {
		t.Error("A fresh session should be unbound")
	}

	session.Bind(7, 3)
	if session.Player() != 7 {
		t.Errorf("Expected player 7, got %d", session.Player())
	}
	if session.Game() != 3 {
		t.Errorf("Expected game 3, got %d", session.Game())
	}
}

func TestManager_AddGetRemove(t *testing.T) {
	manager := NewManager()
	session := NewSession("s1", &MockConnection{})

	manager.Add(session)
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}

	got, ok := manager.Get("s1")
	if !ok || got.ID != "s1" {
		t.Errorf("Expected to find session s1, got %v %v", got, ok)
	}

	manager.Remove("s1")
	if _, ok := manager.Get("s1"); ok {
		t.Error("Expected session removed")
	}
	if manager.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", manager.Count())
	}
}

func TestManager_GetByGameID(t *testing.T) {
	manager := NewManager()

	a := NewSession("a", &MockConnection{})
	a.Bind(1, 10)
	b := NewSession("b", &MockConnection{})
	b.Bind(2, 10)
	c := NewSession("c", &MockConnection{})
	c.Bind(3, 20)
	manager.Add(a)
	manager.Add(b)
	manager.Add(c)

	observers := manager.GetByGameID(10)
	if len(observers) != 2 {
		t.Errorf("Expected 2 sessions for game 10, got %d", len(observers))
	}
	if len(manager.GetByGameID(99)) != 0 {
		t.Error("Expected no sessions for an unknown game")
	}
}

func TestManager_RemoveStale(t *testing.T) {
	manager := NewManager()

	fresh := NewSession("fresh", &MockConnection{})
	staleConn := &MockConnection{}
	stale := NewSession("stale", staleConn)
	stale.LastActive = time.Now().Add(-time.Hour)
	manager.Add(fresh)
	manager.Add(stale)

	removed := manager.RemoveStale(10 * time.Minute)
	if removed != 1 {
		t.Errorf("Expected 1 stale session removed, got %d", removed)
	}
	if !staleConn.closed {
		t.Error("Expected the stale connection closed")
	}
	if _, ok := manager.Get("fresh"); !ok {
		t.Error("The fresh session should survive the sweep")
	}
}
