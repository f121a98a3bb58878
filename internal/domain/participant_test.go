package domain

import (
	"strings"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"host", RoleHost},
		{"viewer", RoleViewer},
		{"", RoleViewer},
		{"HOST", RoleViewer},
		{"admin", RoleViewer},
	}
	for _, tc := range cases {
		if got := ParseRole(tc.in); got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewParticipantDefaults(t *testing.T) {
	p := NewParticipant("", RoleViewer)
	if p.Name != DefaultDisplayName {
		t.Fatalf("empty name: want %q, got %q", DefaultDisplayName, p.Name)
	}

	long := strings.Repeat("x", MaxDisplayNameLen+10)
	p = NewParticipant(long, RoleHost)
	if len(p.Name) != MaxDisplayNameLen {
		t.Fatalf("long name: want length %d, got %d", MaxDisplayNameLen, len(p.Name))
	}
	if p.Role != RoleHost {
		t.Fatalf("want role %q, got %q", RoleHost, p.Role)
	}
}
