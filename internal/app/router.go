package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

// Router relays signaling traffic. It keeps no state of its own: rooms are
// consulted only to turn a room code into the live participant set.
type Router struct {
	Rooms    *core.Registry
	Sessions *Sessions
	Policy   Policy
}

// Offer goes to the named target when one is given, otherwise to every
// other participant of the room.
func (r *Router) Offer(sid core.SessionID, code domain.RoomCode, target core.SessionID, payload json.RawMessage) {
	r.directedOrBroadcast(EvtOffer, sid, code, target, payload)
}

// Answer is directed only. Without a target it is dropped on the floor;
// the sender is not told.
func (r *Router) Answer(sid core.SessionID, target core.SessionID, payload json.RawMessage) {
	if target == "" {
		log.Debug().Str("module", "app.router").Str("sid", string(sid)).Msg("answer without target dropped")
		return
	}
	r.sendDirected(EvtAnswer, sid, target, payload)
}

// Candidate follows the same directed-or-broadcast rule as Offer.
func (r *Router) Candidate(sid core.SessionID, code domain.RoomCode, target core.SessionID, payload json.RawMessage) {
	r.directedOrBroadcast(EvtIceCandidate, sid, code, target, payload)
}

// Chat fans out to the whole room, sender included.
func (r *Router) Chat(sid core.SessionID, code domain.RoomCode, name, text string) {
	room, ok := r.Rooms.GetRoom(code)
	if !ok {
		return
	}
	frame := encode(chatMessageEvent{Type: EvtChatMessage, From: sid, Name: name, Text: text})
	applyBackpressure(r.Policy, r.Sessions, room, room.Broadcast(sid, true, frame))
}

// HostStatus stores and rebroadcasts the host's status blob. Updates from
// any other session are ignored without a reply.
func (r *Router) HostStatus(sid core.SessionID, code domain.RoomCode, payload json.RawMessage) {
	room, ok := r.Rooms.GetRoom(code)
	if !ok {
		return
	}
	if !room.SetHostStatus(sid, payload) {
		log.Debug().Str("module", "app.router").Str("sid", string(sid)).Str("room", string(code)).Msg("host-status from non-host ignored")
		return
	}
	frame := encode(hostStatusEvent{Type: EvtHostStatus, Payload: payload})
	applyBackpressure(r.Policy, r.Sessions, room, room.Broadcast(sid, true, frame))
}

func (r *Router) directedOrBroadcast(evt string, sid core.SessionID, code domain.RoomCode, target core.SessionID, payload json.RawMessage) {
	if target != "" {
		r.sendDirected(evt, sid, target, payload)
		return
	}
	room, ok := r.Rooms.GetRoom(code)
	if !ok {
		return
	}
	frame := encode(signalEvent{Type: evt, From: sid, Payload: payload})
	applyBackpressure(r.Policy, r.Sessions, room, room.Broadcast(sid, false, frame))
}

func (r *Router) sendDirected(evt string, from, target core.SessionID, payload json.RawMessage) {
	conn, ok := r.Sessions.Get(target)
	if !ok {
		log.Debug().Str("module", "app.router").Str("evt", evt).Str("to", string(target)).Msg("directed signal to unknown session dropped")
		return
	}
	send(conn, signalEvent{Type: evt, From: from, Payload: payload})
}
