package app

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	fail   bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("backpressure")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

// events decodes every captured frame.
func (f *fakeConn) events(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("bad frame %s: %v", fr, err)
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeConn) countType(t *testing.T, typ string) int {
	t.Helper()
	n := 0
	for _, ev := range f.events(t) {
		if ev["type"] == typ {
			n++
		}
	}
	return n
}

func (f *fakeConn) lastOfType(t *testing.T, typ string) map[string]any {
	t.Helper()
	var last map[string]any
	for _, ev := range f.events(t) {
		if ev["type"] == typ {
			last = ev
		}
	}
	if last == nil {
		t.Fatalf("no %q event captured", typ)
	}
	return last
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

type harness struct {
	rooms    *core.Registry
	sessions *Sessions
	lc       *Lifecycle
	rt       *Router
}

func newHarness() *harness {
	rooms := core.NewRegistry(6, 5)
	sessions := NewSessions()
	policy := DropPolicy{}
	return &harness{
		rooms:    rooms,
		sessions: sessions,
		lc:       &Lifecycle{Rooms: rooms, Sessions: sessions, Policy: policy},
		rt:       &Router{Rooms: rooms, Sessions: sessions, Policy: policy},
	}
}

// join binds the session and runs the join flow in one step.
func (h *harness) join(t *testing.T, sid core.SessionID, code domain.RoomCode, name string, role domain.Role) *fakeConn {
	t.Helper()
	conn := &fakeConn{}
	h.sessions.Bind(sid, conn, nil)
	h.lc.OnJoin(sid, conn, code, name, role)
	return conn
}

func (h *harness) createRoom(t *testing.T) domain.RoomCode {
	t.Helper()
	code, err := h.rooms.CreateRoom()
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	return code
}
