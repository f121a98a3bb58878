package domain

const (
	MaxDisplayNameLen  = 36
	DefaultDisplayName = "Guest"
)

// Role says what a participant does in a room: the host drives the shared
// stream, viewers receive it. At most one host is referenced per room at a time.
type Role string

const (
	RoleHost   Role = "host"
	RoleViewer Role = "viewer"
)

// ParseRole maps client input to a Role. Anything that is not exactly
// "host" joins as a viewer.
func ParseRole(raw string) Role {
	if raw == string(RoleHost) {
		return RoleHost
	}
	return RoleViewer
}

// Participant is one session's membership meta inside a room.
// No transport or lifecycle logic here.
type Participant struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// NewParticipant avoids raw literals in adapters and keeps construction obvious.
// Empty names fall back to DefaultDisplayName, long ones are cut.
func NewParticipant(name string, role Role) Participant {
	if name == "" {
		name = DefaultDisplayName
	}
	if len(name) > MaxDisplayNameLen {
		name = name[:MaxDisplayNameLen]
	}
	return Participant{Name: name, Role: role}
}
