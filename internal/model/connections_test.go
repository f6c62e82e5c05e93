package model

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbeisheim/minimax-chess/internal/ws"
)

// socketStub stands in for a websocket: it flags overlapping writes and keeps
// the message types it was sent.
type socketStub struct {
	inFlight atomic.Int32
	overlap  atomic.Bool
	fail     bool

	mu     sync.Mutex
	types  []ws.MessageType
	closed bool
}

func (s *socketStub) enter() func() {
	if s.inFlight.Add(1) > 1 {
		s.overlap.Store(true)
	}
	time.Sleep(20 * time.Microsecond)
	return func() { s.inFlight.Add(-1) }
}

func (s *socketStub) WriteJSON(v interface{}) error {
	defer s.enter()()
	if s.fail {
		return errors.New("broken pipe")
	}
	if msg, ok := v.(ws.Message); ok {
		s.mu.Lock()
		s.types = append(s.types, msg.Type)
		s.mu.Unlock()
	}
	return nil
}

func (s *socketStub) WriteMessage(int, []byte) error {
	defer s.enter()()
	return nil
}

func (s *socketStub) Close() error {
	defer s.enter()()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *socketStub) count(t ws.MessageType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, got := range s.types {
		if got == t {
			n++
		}
	}
	return n
}

func (g *Game) connectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

func TestBroadcastsAndRepliesDoNotOverlap(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	sock := &socketStub{}
	conn := ws.NewConn(sock)
	if err := g.RegisterConnection("alice", conn); err != nil {
		t.Fatal(err)
	}

	reply, _ := ws.NewMessage(ws.MessageTypeHintList, ws.HintList{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			g.broadcastState()
		}()
		go func() {
			defer wg.Done()
			conn.WriteJSON(reply)
		}()
	}
	for _, m := range []SimpleMove{
		{From: sq("e2"), To: sq("e4")},
		{From: sq("e7"), To: sq("e5")},
	} {
		player := "alice"
		if m.From.Row < 4 {
			player = "bob"
		}
		if _, err := g.MakeMove(player, m); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()

	if sock.overlap.Load() {
		t.Fatalf("two writes reached the socket at once")
	}
	if got := sock.count(ws.MessageTypeGameState); got < 8 {
		t.Fatalf("expected at least 8 state frames, got %d", got)
	}
	if got := sock.count(ws.MessageTypeHintList); got != 8 {
		t.Fatalf("expected 8 replies, got %d", got)
	}
}

func TestRegisterConnectionRules(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	first := ws.NewConn(&socketStub{})
	if err := g.RegisterConnection("alice", first); err != nil {
		t.Fatal(err)
	}

	dupSock := &socketStub{}
	if err := g.RegisterConnection("alice", ws.NewConn(dupSock)); err != nil {
		t.Fatal(err)
	}
	dupSock.mu.Lock()
	closed := dupSock.closed
	dupSock.mu.Unlock()
	if !closed {
		t.Fatalf("duplicate connection left open")
	}

	if err := g.RegisterConnection("mallory", ws.NewConn(&socketStub{})); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("full game accepted an outsider: %v", err)
	}

	g.UnregisterConnection("alice", ws.NewConn(&socketStub{}))
	if g.connectionCount() != 1 {
		t.Fatalf("unregistering a stale connection dropped the live one")
	}
	g.UnregisterConnection("alice", first)
	if g.connectionCount() != 0 {
		t.Fatalf("connection not removed")
	}
}

func TestBroadcastDropsBrokenConnection(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("alice")

	g.connections.mu.Lock()
	g.connections.connections["alice"] = ws.NewConn(&socketStub{fail: true})
	g.connections.mu.Unlock()

	g.broadcastState()
	if g.connectionCount() != 0 {
		t.Fatalf("broken connection kept")
	}
}

func TestBroadcastPayloadIsState(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("alice")

	var captured ws.Message
	sock := &captureStub{got: &captured}
	g.connections.mu.Lock()
	g.connections.connections["alice"] = ws.NewConn(sock)
	g.connections.mu.Unlock()

	g.broadcastState()
	var state GameState
	if err := json.Unmarshal(captured.Payload, &state); err != nil {
		t.Fatal(err)
	}
	if state.Players.White.ID != "alice" || state.ToMove != White {
		t.Fatalf("unexpected payload %+v", state)
	}
}

type captureStub struct {
	socketStub
	got *ws.Message
}

func (c *captureStub) WriteJSON(v interface{}) error {
	*c.got = v.(ws.Message)
	return nil
}
