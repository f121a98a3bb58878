package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

// Wire event names, shared by all emitters.
const (
	EvtRoomCreated       = "room-created"
	EvtJoinError         = "join-error"
	EvtJoined            = "joined"
	EvtParticipantJoined = "participant-joined"
	EvtParticipantLeft   = "participant-left"
	EvtViewerJoined      = "viewer-joined"
	EvtHostLeft          = "host-left"
	EvtOffer             = "offer"
	EvtAnswer            = "answer"
	EvtIceCandidate      = "ice-candidate"
	EvtChatMessage       = "chat-message"
	EvtHostStatus        = "host-status"
)

type roomCreatedEvent struct {
	Type string          `json:"type"`
	Room domain.RoomCode `json:"room"`
}

type joinErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type joinedEvent struct {
	Type       string          `json:"type"`
	Room       domain.RoomCode `json:"room"`
	HostOnline bool            `json:"hostOnline"`
}

type participantJoinedEvent struct {
	Type      string         `json:"type"`
	SessionID core.SessionID `json:"sessionId"`
	Name      string         `json:"name"`
	Role      domain.Role    `json:"role"`
}

type participantLeftEvent struct {
	Type      string         `json:"type"`
	SessionID core.SessionID `json:"sessionId"`
	Name      string         `json:"name"`
}

type viewerJoinedEvent struct {
	Type      string         `json:"type"`
	SessionID core.SessionID `json:"sessionId"`
	Name      string         `json:"name"`
}

type hostLeftEvent struct {
	Type string `json:"type"`
}

type signalEvent struct {
	Type    string          `json:"type"`
	From    core.SessionID  `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type chatMessageEvent struct {
	Type string         `json:"type"`
	From core.SessionID `json:"from"`
	Name string         `json:"name"`
	Text string         `json:"text"`
}

type hostStatusEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// encode marshals an event for the wire. Events are plain tagged structs,
// a marshal failure here is a programming error and only gets logged.
func encode(v any) core.Frame {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.events").Msg("event marshal")
		return nil
	}
	return core.Frame(b)
}

// send is fire-and-forget: a full or closed connection drops the frame.
func send(conn core.SignalConnection, v any) {
	f := encode(v)
	if f == nil {
		return
	}
	if err := conn.TrySend(f); err != nil {
		log.Debug().Err(err).Str("module", "app.events").Msg("directed send dropped")
	}
}
