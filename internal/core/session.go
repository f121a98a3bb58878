package core

import "github.com/watchparty/signaling/internal/domain"

// Frame is a raw JSON payload ready for the wire.
type Frame []byte

// SessionID identifies one connected client. It is assigned by the
// transport layer and stays opaque to the core.
type SessionID string

// SignalConnection abstracts the per-session messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats/backpressure to the caller.
type PublishResult struct {
	SentTo  int
	Dropped []SessionID
}

// ParticipantDTO is a read-only view for APIs (no transport fields).
type ParticipantDTO struct {
	SessionID SessionID   `json:"sessionId"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
}

// RoomSnapshot is what the read-only HTTP surface sees: who is in the
// room and whether a host is currently assigned.
type RoomSnapshot struct {
	Participants []ParticipantDTO `json:"participants"`
	HostOnline   bool             `json:"host_online"`
}
