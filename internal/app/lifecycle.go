package app

import (
	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

// Lifecycle handles join and disconnect: it is the only writer of room
// membership and emits the notifications each transition requires.
type Lifecycle struct {
	Rooms    *core.Registry
	Sessions *Sessions
	Policy   Policy
}

// CreateRoom services the client-initiated create-room event.
func (l *Lifecycle) CreateRoom(conn core.SignalConnection) {
	code, err := l.Rooms.CreateRoom()
	if err != nil {
		send(conn, joinErrorEvent{Type: EvtJoinError, Error: err.Error()})
		return
	}
	send(conn, roomCreatedEvent{Type: EvtRoomCreated, Room: code})
}

// OnJoin attaches the session to the room, or answers with a join-error
// when the code names nothing. A host-role join takes the host slot; the
// previous host, if any, is silently unreferenced.
func (l *Lifecycle) OnJoin(sid core.SessionID, conn core.SignalConnection, code domain.RoomCode, name string, role domain.Role) {
	room, ok := l.Rooms.GetRoom(code)
	if !ok {
		log.Info().Str("module", "app.lifecycle").Str("sid", string(sid)).Str("room", string(code)).Msg("join against unknown room")
		send(conn, joinErrorEvent{Type: EvtJoinError, Error: "room-not-found"})
		return
	}

	p := domain.NewParticipant(name, role)
	room.AddParticipant(sid, p, conn)

	joinedFrame := encode(participantJoinedEvent{Type: EvtParticipantJoined, SessionID: sid, Name: p.Name, Role: p.Role})
	l.applyBackpressure(room, room.Broadcast(sid, true, joinedFrame))

	if p.Role == domain.RoleHost {
		send(conn, joinedEvent{Type: EvtJoined, Room: code, HostOnline: true})
		return
	}

	// Tell the host a viewer arrived so it can start signaling toward it.
	if _, hostConn, ok := room.Host(); ok {
		send(hostConn, viewerJoinedEvent{Type: EvtViewerJoined, SessionID: sid, Name: p.Name})
	}
	send(conn, joinedEvent{Type: EvtJoined, Room: code, HostOnline: room.HostOnline()})
}

// OnDisconnect runs the cleanup cascade for every room the session sits
// in. Each room's cleanup is independent and safe to re-run; empty rooms
// stay in the registry.
func (l *Lifecycle) OnDisconnect(sid core.SessionID) {
	for _, room := range l.Rooms.RoomsOf(sid) {
		p, wasHost, ok := room.RemoveParticipant(sid)
		if !ok {
			continue
		}
		leftFrame := encode(participantLeftEvent{Type: EvtParticipantLeft, SessionID: sid, Name: p.Name})
		l.applyBackpressure(room, room.Broadcast(sid, false, leftFrame))
		if wasHost {
			hostLeftFrame := encode(hostLeftEvent{Type: EvtHostLeft})
			l.applyBackpressure(room, room.Broadcast(sid, false, hostLeftFrame))
		}
	}
}

func (l *Lifecycle) applyBackpressure(room *core.Room, res core.PublishResult) {
	applyBackpressure(l.Policy, l.Sessions, room, res)
}

func applyBackpressure(p Policy, sessions *Sessions, room *core.Room, res core.PublishResult) {
	if p == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch p.OnBackpressure(room, slow) {
		case KickMember:
			sessions.Cancel(slow)
		case NoAction, DropFrame:
		}
	}
}
