package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Role
	}{
		{name: "producer", in: "Producer/CEO", want: RoleProducerCEO},
		{name: "line producer", in: "Line Producer", want: RoleLineProducer},
		{name: "unit manager", in: "1st AD/Unit Manager", want: RoleUnitManager},
		{name: "vfx", in: "VFX Supervisor/Director", want: RoleVFXSupervisor},
		{name: "legacy value", in: "Executive Producer", want: RoleUnknown},
		{name: "empty", in: "", want: RoleUnknown},
		{name: "case matters", in: "producer/ceo", want: RoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRole(tt.in); got != tt.want {
				t.Fatalf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, role := range Roles() {
		dir := t.TempDir()
		u := User{Name: "Priya Nair", Email: "priya@shotweave.in", Username: "priya", Role: role}

		s := NewStore(dir)
		if err := s.SetCurrent(u); err != nil {
			t.Fatalf("SetCurrent: %v", err)
		}

		// Simulated reload: fresh store over the same slot.
		restored := NewStore(dir).Restore()
		if restored == nil {
			t.Fatalf("role %q: restore returned absent", role)
		}
		if *restored != u {
			t.Fatalf("role %q: restored %+v, want %+v", role, *restored, u)
		}
	}
}

func TestRestoreMissingSlot(t *testing.T) {
	s := NewStore(t.TempDir())
	if got := s.Restore(); got != nil {
		t.Fatalf("restore of empty dir = %+v, want nil", got)
	}
	if s.Current() != nil {
		t.Fatal("current should stay absent")
	}
}

func TestRestoreCorruptedSlotSelfHeals(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{{"},
		{name: "unknown role", content: `{"name":"x","email":"x@y.z","username":"x","role":"Gaffer"}`},
		{name: "empty role", content: `{"name":"x","email":"x@y.z","username":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, slotFile)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("seed slot: %v", err)
			}

			s := NewStore(dir)
			if got := s.Restore(); got != nil {
				t.Fatalf("restore = %+v, want nil", got)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("slot should be erased, stat err = %v", err)
			}
		})
	}
}

func TestSetCurrentRejectsUnknownRole(t *testing.T) {
	s := NewStore(t.TempDir())
	err := s.SetCurrent(User{Name: "x", Role: Role("Best Boy")})
	if err == nil {
		t.Fatal("expected error for out-of-enum role")
	}
}

func TestClearIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.SetCurrent(User{Name: "a", Email: "a@b.c", Username: "a", Role: RoleLineProducer}); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}

	s.Clear()
	s.Clear() // second clear must be a silent no-op

	if s.Current() != nil {
		t.Fatal("current should be absent after clear")
	}
	if _, err := os.Stat(filepath.Join(dir, slotFile)); !os.IsNotExist(err) {
		t.Fatalf("slot should be gone, stat err = %v", err)
	}
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	s := NewStore(t.TempDir())

	var seen []*User
	s.Subscribe(func(u *User) { seen = append(seen, u) })

	u := User{Name: "a", Email: "a@b.c", Username: "a", Role: RoleProducerCEO}
	if err := s.SetCurrent(u); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	if len(seen) != 1 || seen[0] == nil || *seen[0] != u {
		t.Fatalf("after SetCurrent, notifications = %+v", seen)
	}

	s.Clear()
	if len(seen) != 2 || seen[1] != nil {
		t.Fatalf("after Clear, notifications = %+v", seen)
	}
}
