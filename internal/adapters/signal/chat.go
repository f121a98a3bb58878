package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

func (ctl *SignalWSController) handleChat(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type chatPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
		Name string `json:"name"`
		Text string `json:"text"`
	}
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad chat payload")
		return
	}

	if !ctl.Chat.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("chat rate limited")
		return
	}

	ctl.Router.Chat(sid, domain.NormalizeRoomCode(p.Room), p.Name, p.Text)
}
