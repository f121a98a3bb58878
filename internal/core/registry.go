package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/domain"
)

// DefaultCreateRetries bounds the collision loop in CreateRoom.
const DefaultCreateRetries = 5

// Registry owns the code→room map for the whole process. Rooms are never
// evicted once created; all state is volatile and gone on restart.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[domain.RoomCode]*Room
	codeLen int
	retries int

	// genCode is swappable so tests can force collisions.
	genCode func(n int) domain.RoomCode
}

func NewRegistry(codeLen, retries int) *Registry {
	if codeLen <= 0 {
		codeLen = domain.DefaultCodeLen
	}
	if retries <= 0 {
		retries = DefaultCreateRetries
	}
	return &Registry{
		rooms:   make(map[domain.RoomCode]*Room),
		codeLen: codeLen,
		retries: retries,
		genCode: domain.NewRoomCode,
	}
}

// CreateRoom generates a fresh code, retrying on collision up to the
// configured budget, and inserts an empty room. Exhausting the budget
// surfaces ErrCodeSpaceExhausted instead of clobbering an existing room.
func (r *Registry) CreateRoom() (domain.RoomCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < r.retries; i++ {
		code := r.genCode(r.codeLen)
		if _, taken := r.rooms[code]; taken {
			continue
		}
		r.rooms[code] = NewRoom(code)
		log.Info().Str("module", "core.registry").Str("room", string(code)).Msg("room created")
		return code, nil
	}
	log.Error().Str("module", "core.registry").Int("retries", r.retries).Msg("code generation exhausted")
	return "", domain.ErrCodeSpaceExhausted
}

// GetRoom looks a room up by its canonical code.
func (r *Registry) GetRoom(code domain.RoomCode) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	return room, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// RoomsOf scans the registry for every room the session is currently a
// member of. Nothing stops one session from sitting in several rooms, so
// disconnect cleanup has to visit all of them.
func (r *Registry) RoomsOf(sid SessionID) []*Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Room
	for _, room := range r.rooms {
		if room.Has(sid) {
			out = append(out, room)
		}
	}
	return out
}
