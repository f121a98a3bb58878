package app

import "github.com/watchparty/signaling/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what to do with a room member whose connection could not
// take a broadcast frame.
type Policy interface {
	OnBackpressure(room *core.Room, sid core.SessionID) BackpressureAction
}

// DropPolicy keeps delivery best-effort: a slow consumer just misses the
// frame and stays connected.
type DropPolicy struct{}

func (DropPolicy) OnBackpressure(room *core.Room, sid core.SessionID) BackpressureAction {
	return DropFrame
}

// KickPolicy disconnects members that cannot keep up.
type KickPolicy struct{}

func (KickPolicy) OnBackpressure(room *core.Room, sid core.SessionID) BackpressureAction {
	return KickMember
}
