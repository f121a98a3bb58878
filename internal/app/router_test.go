package app

import (
	"encoding/json"
	"testing"

	"github.com/watchparty/signaling/internal/domain"
)

var sdpPayload = json.RawMessage(`{"type":"offer","sdp":"v=0"}`)

func TestDirectedOfferReachesTargetOnly(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "h", code, "Host", domain.RoleHost)
	v1 := h.join(t, "v1", code, "V1", domain.RoleViewer)
	v2 := h.join(t, "v2", code, "V2", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1, v2} {
		c.reset()
	}

	h.rt.Offer("h", code, "v1", sdpPayload)

	ev := v1.lastOfType(t, EvtOffer)
	if ev["from"] != "h" {
		t.Fatalf("offer must carry from=h: %v", ev)
	}
	if v2.countType(t, EvtOffer) != 0 || host.countType(t, EvtOffer) != 0 {
		t.Fatal("directed offer must reach the target and no one else")
	}
}

func TestUndirectedOfferBroadcasts(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "h", code, "Host", domain.RoleHost)
	v1 := h.join(t, "v1", code, "V1", domain.RoleViewer)
	v2 := h.join(t, "v2", code, "V2", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1, v2} {
		c.reset()
	}

	h.rt.Offer("h", code, "", sdpPayload)

	if v1.countType(t, EvtOffer) != 1 || v2.countType(t, EvtOffer) != 1 {
		t.Fatal("undirected offer must reach every other participant")
	}
	if host.countType(t, EvtOffer) != 0 {
		t.Fatal("undirected offer must never echo to the sender")
	}
}

func TestAnswerWithoutTargetDropped(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "h", code, "Host", domain.RoleHost)
	v1 := h.join(t, "v1", code, "V1", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1} {
		c.reset()
	}

	h.rt.Answer("v1", "", sdpPayload)

	if host.countType(t, EvtAnswer) != 0 || v1.countType(t, EvtAnswer) != 0 {
		t.Fatal("an answer without a target goes nowhere")
	}
}

func TestDirectedAnswer(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "h", code, "Host", domain.RoleHost)
	v1 := h.join(t, "v1", code, "V1", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1} {
		c.reset()
	}

	h.rt.Answer("v1", "h", sdpPayload)

	ev := host.lastOfType(t, EvtAnswer)
	if ev["from"] != "v1" {
		t.Fatalf("answer must carry from=v1: %v", ev)
	}
	if v1.countType(t, EvtAnswer) != 0 {
		t.Fatal("answer must not echo to the sender")
	}
}

func TestCandidateRouting(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "h", code, "Host", domain.RoleHost)
	v1 := h.join(t, "v1", code, "V1", domain.RoleViewer)
	v2 := h.join(t, "v2", code, "V2", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1, v2} {
		c.reset()
	}

	cand := json.RawMessage(`{"candidate":"candidate:1 1 udp 1 10.0.0.1 50000 typ host"}`)

	h.rt.Candidate("h", code, "v2", cand)
	if v2.countType(t, EvtIceCandidate) != 1 || v1.countType(t, EvtIceCandidate) != 0 {
		t.Fatal("directed candidate must reach only its target")
	}

	h.rt.Candidate("v1", code, "", cand)
	if host.countType(t, EvtIceCandidate) != 1 || v2.countType(t, EvtIceCandidate) != 2 {
		t.Fatal("undirected candidate must reach every other participant")
	}
	if v1.countType(t, EvtIceCandidate) != 0 {
		t.Fatal("undirected candidate must never echo to the sender")
	}
}

func TestChatIncludesSender(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "h", code, "Host", domain.RoleHost)
	v1 := h.join(t, "v1", code, "V1", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1} {
		c.reset()
	}

	h.rt.Chat("v1", code, "V1", "hello")

	for name, conn := range map[string]*fakeConn{"host": host, "v1": v1} {
		ev := conn.lastOfType(t, EvtChatMessage)
		if ev["from"] != "v1" || ev["name"] != "V1" || ev["text"] != "hello" {
			t.Fatalf("%s got wrong chat event: %v", name, ev)
		}
	}
}

func TestHostStatusFromNonHostIgnored(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "h", code, "Host", domain.RoleHost)
	v1 := h.join(t, "v1", code, "V1", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1} {
		c.reset()
	}

	h.rt.HostStatus("v1", code, json.RawMessage(`{"sharing":true}`))

	if host.countType(t, EvtHostStatus) != 0 || v1.countType(t, EvtHostStatus) != 0 {
		t.Fatal("non-host status must produce no broadcast")
	}
	room, _ := h.rooms.GetRoom(code)
	if room.HostStatus() != nil {
		t.Fatal("non-host status must not be stored")
	}
}

func TestHostStatusStoredAndBroadcast(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "h", code, "Host", domain.RoleHost)
	v1 := h.join(t, "v1", code, "V1", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1} {
		c.reset()
	}

	h.rt.HostStatus("h", code, json.RawMessage(`{"sharing":true}`))

	for name, conn := range map[string]*fakeConn{"host": host, "v1": v1} {
		ev := conn.lastOfType(t, EvtHostStatus)
		payload, _ := ev["payload"].(map[string]any)
		if payload["sharing"] != true {
			t.Fatalf("%s got wrong host-status: %v", name, ev)
		}
	}
	room, _ := h.rooms.GetRoom(code)
	if string(room.HostStatus()) != `{"sharing":true}` {
		t.Fatalf("stored status = %s", room.HostStatus())
	}
}

// Full run of the documented scenario: host H, viewers V1 and V2.
func TestSignalingScenario(t *testing.T) {
	h := newHarness()
	code := h.createRoom(t)
	host := h.join(t, "H", code, "Host", domain.RoleHost)
	v1 := h.join(t, "V1", code, "Alice", domain.RoleViewer)
	v2 := h.join(t, "V2", code, "Bob", domain.RoleViewer)
	for _, c := range []*fakeConn{host, v1, v2} {
		c.reset()
	}

	h.rt.Offer("H", code, "V1", sdpPayload)
	ev := v1.lastOfType(t, EvtOffer)
	if ev["from"] != "H" {
		t.Fatalf("offer from = %v", ev["from"])
	}
	if v2.countType(t, EvtOffer) != 0 {
		t.Fatal("V2 must not see the directed offer")
	}

	h.rt.Answer("V1", "H", sdpPayload)
	ev = host.lastOfType(t, EvtAnswer)
	if ev["from"] != "V1" {
		t.Fatalf("answer from = %v", ev["from"])
	}
	if v2.countType(t, EvtAnswer) != 0 {
		t.Fatal("V2 must not see the answer")
	}

	h.lc.OnDisconnect("H")
	if v1.countType(t, EvtHostLeft) != 1 || v2.countType(t, EvtHostLeft) != 1 {
		t.Fatal("each viewer gets exactly one host-left")
	}

	room, _ := h.rooms.GetRoom(code)
	snap := room.Snapshot()
	if snap.HostOnline || len(snap.Participants) != 2 {
		t.Fatalf("snapshot after host left: %+v", snap)
	}
}
