package signal

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/core"
	"github.com/watchparty/signaling/internal/domain"
)

// The payloads are relayed, never acted on. Decoding into pion types is
// shape validation at the edge: garbage never reaches the other peer.

func (ctl *SignalWSController) handleOffer(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type offerPayload struct {
		Type    string          `json:"type"`
		Room    string          `json:"room"`
		To      string          `json:"to,omitempty"`
		Payload json.RawMessage `json:"payload"`
	}
	var p offerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		return
	}
	var sd webrtc.SessionDescription
	if err := json.Unmarshal(p.Payload, &sd); err != nil || sd.SDP == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("offer payload is not a session description")
		return
	}

	ctl.Router.Offer(sid, domain.NormalizeRoomCode(p.Room), core.SessionID(p.To), p.Payload)
}

func (ctl *SignalWSController) handleAnswer(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type answerPayload struct {
		Type    string          `json:"type"`
		To      string          `json:"to,omitempty"`
		Payload json.RawMessage `json:"payload"`
	}
	var p answerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		return
	}
	var sd webrtc.SessionDescription
	if err := json.Unmarshal(p.Payload, &sd); err != nil || sd.SDP == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("answer payload is not a session description")
		return
	}

	ctl.Router.Answer(sid, core.SessionID(p.To), p.Payload)
}

func (ctl *SignalWSController) handleCandidate(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type candidatePayload struct {
		Type    string          `json:"type"`
		Room    string          `json:"room,omitempty"`
		To      string          `json:"to,omitempty"`
		Payload json.RawMessage `json:"payload"`
	}
	var p candidatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		return
	}
	var ci webrtc.ICECandidateInit
	if err := json.Unmarshal(p.Payload, &ci); err != nil {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("candidate payload is not an ICE candidate")
		return
	}

	ctl.Router.Candidate(sid, domain.NormalizeRoomCode(p.Room), core.SessionID(p.To), p.Payload)
}
