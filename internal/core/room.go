package core

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/domain"
)

// ErrNoSuchParticipant means a directed send named a session the room
// does not currently hold.
var ErrNoSuchParticipant = errors.New("no such participant")

type participantEntry struct {
	meta domain.Participant
	conn SignalConnection
}

// Room is a threadsafe in-memory room: membership, the current host slot
// and the host's last status blob. All read-modify-write on one room goes
// through this mutex, so two near-simultaneous host joins cannot corrupt
// the participant map. It never closes adapter-owned connections.
type Room struct {
	code      domain.RoomCode
	createdAt time.Time

	mu           sync.RWMutex
	hostSID      SessionID
	participants map[SessionID]participantEntry
	hostStatus   json.RawMessage
}

func NewRoom(code domain.RoomCode) *Room {
	return &Room{
		code:         code,
		createdAt:    time.Now(),
		participants: make(map[SessionID]participantEntry),
	}
}

func (r *Room) Code() domain.RoomCode { return r.code }
func (r *Room) CreatedAt() time.Time  { return r.createdAt }

func (r *Room) ParticipantCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}

// AddParticipant inserts or overwrites the session's membership. A host-role
// join also takes the host slot; a previous host keeps its membership but is
// no longer referenced, and gets no demotion notice.
func (r *Room) AddParticipant(sid SessionID, p domain.Participant, conn SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[sid] = participantEntry{meta: p, conn: conn}
	if p.Role == domain.RoleHost {
		r.hostSID = sid
	}
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("sid", string(sid)).Str("role", string(p.Role)).Msg("participant added")
}

// RemoveParticipant deletes the session from the room and clears the host
// slot if it was the host. Removing an absent session is a no-op, so
// disconnect cleanup can run more than once.
func (r *Room) RemoveParticipant(sid SessionID) (p domain.Participant, wasHost, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.participants[sid]
	if !ok {
		return domain.Participant{}, false, false
	}
	delete(r.participants, sid)
	if r.hostSID == sid {
		r.hostSID = ""
		wasHost = true
	}
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("sid", string(sid)).Bool("was_host", wasHost).Msg("participant removed")
	return entry.meta, wasHost, true
}

func (r *Room) Has(sid SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.participants[sid]
	return ok
}

func (r *Room) HostOnline() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hostSID != ""
}

// Host returns the current host session, if one is assigned.
func (r *Room) Host() (SessionID, SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.hostSID == "" {
		return "", nil, false
	}
	entry, ok := r.participants[r.hostSID]
	if !ok {
		return "", nil, false
	}
	return r.hostSID, entry.conn, true
}

// SetHostStatus stores the payload only when the sender holds the host slot.
// Anything else is rejected without touching stored state.
func (r *Room) SetHostStatus(sender SessionID, payload json.RawMessage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hostSID == "" || r.hostSID != sender {
		return false
	}
	r.hostStatus = payload
	return true
}

func (r *Room) HostStatus() json.RawMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hostStatus
}

// Broadcast fans data out to the room. The sender is skipped unless
// includeSender is set. Delivery is best-effort: slow consumers are
// reported back, never waited on.
func (r *Room) Broadcast(from SessionID, includeSender bool, data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for sid, entry := range r.participants {
		if sid == from && !includeSender {
			continue
		}
		if err := entry.conn.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, sid)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.code)).Str("from", string(from)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

// SendTo delivers directly to one room member.
func (r *Room) SendTo(sid SessionID, data Frame) error {
	r.mu.RLock()
	entry, ok := r.participants[sid]
	r.mu.RUnlock()
	if !ok {
		return ErrNoSuchParticipant
	}
	return entry.conn.TrySend(data)
}

// Snapshot copies the membership for read-only callers. External surfaces
// must use this instead of holding a live reference into the room.
func (r *Room) Snapshot() RoomSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ParticipantDTO, 0, len(r.participants))
	for sid, entry := range r.participants {
		out = append(out, ParticipantDTO{SessionID: sid, Name: entry.meta.Name, Role: entry.meta.Role})
	}
	return RoomSnapshot{Participants: out, HostOnline: r.hostSID != ""}
}
