package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
)

type sessionEntry struct {
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// Sessions tracks every live connection by session id, independent of room
// membership. Directed sends that carry no room code (answers) resolve
// their target here.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[core.SessionID]*sessionEntry)}
}

func (s *Sessions) Bind(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("bound session")
}

func (s *Sessions) Get(sid core.SessionID) (core.SignalConnection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

func (s *Sessions) Unbind(sid core.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("unbind session")
}

// Cancel tears the session's connection context down, which drives the
// normal disconnect path in the transport.
func (s *Sessions) Cancel(sid core.SessionID) bool {
	s.mu.RLock()
	e, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("canceled session")
	return true
}
