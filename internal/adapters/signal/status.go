package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

func (ctl *SignalWSController) handleHostStatus(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type statusPayload struct {
		Type    string          `json:"type"`
		Room    string          `json:"room"`
		Payload json.RawMessage `json:"payload"`
	}
	var p statusPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad host-status payload")
		return
	}

	ctl.Router.HostStatus(sid, domain.NormalizeRoomCode(p.Room), p.Payload)
}
