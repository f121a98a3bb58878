package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

func (ctl *SignalWSController) handleCreateRoom(
	sid core.SessionID,
	conn *WsSignalConn,
) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("create-room")
	ctl.Lifecycle.CreateRoom(conn)
}

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
		Name string `json:"name,omitempty"`
		Role string `json:"role,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendJSON(conn, map[string]any{
			"type":  "error",
			"error": "bad_payload",
		})
		return
	}

	code := domain.NormalizeRoomCode(p.Room)
	role := domain.ParseRole(p.Role)
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(code)).Str("role", string(role)).Msg("join")
	ctl.Lifecycle.OnJoin(sid, conn, code, p.Name, role)
}
