package participant

import "testing"

func TestNewID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ID
		wantErr bool
	}{
		{"plain token", "alice", ID("alice"), false},
		{"whitespace trimmed", "  bob \t", ID("bob"), false},
		{"empty rejected", "", "", true},
		{"whitespace only rejected", "   ", "", true},
		{"reserved rejected", "__system__", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewID(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NewID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSystemSentinel(t *testing.T) {
	if !System.IsSystem() {
		t.Error("System.IsSystem() should be true")
	}
	if ID("alice").IsSystem() {
		t.Error("regular ID should not be the system sentinel")
	}
}

func TestNewRoster_RejectsDuplicates(t *testing.T) {
	_, err := NewRoster([]string{"a", "b", "a"})
	if err == nil {
		t.Fatal("expected error for duplicate roster entries")
	}
}

func TestRoster_BaselineAuthorRotation(t *testing.T) {
	roster, err := NewRoster([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewRoster() error = %v", err)
	}

	tests := []struct {
		round int
		want  ID
	}{
		{1, "a"},
		{2, "b"},
		{3, "c"},
		{4, "a"},
		{7, "a"},
	}
	for _, tt := range tests {
		if got := roster.BaselineAuthor(tt.round); got != tt.want {
			t.Errorf("BaselineAuthor(%d) = %q, want %q", tt.round, got, tt.want)
		}
	}
}

func TestRoster_FirstExcluding(t *testing.T) {
	roster, err := NewRoster([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewRoster() error = %v", err)
	}

	got, ok := roster.FirstExcluding("a")
	if !ok || got != "b" {
		t.Errorf("FirstExcluding(a) = %q, %v; want b, true", got, ok)
	}

	got, ok = roster.FirstExcluding("a", "b")
	if !ok || got != "c" {
		t.Errorf("FirstExcluding(a, b) = %q, %v; want c, true", got, ok)
	}

	if _, ok := roster.FirstExcluding("a", "b", "c"); ok {
		t.Error("FirstExcluding with all members excluded should report false")
	}
}

func TestRoster_RotationRoleSelection(t *testing.T) {
	roster, err := NewRoster([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewRoster() error = %v", err)
	}

	tests := []struct {
		round                   int
		author, injector, fixer ID
	}{
		{1, "a", "b", "c"},
		{2, "b", "c", "a"},
		{3, "c", "a", "b"},
		{4, "a", "b", "c"},
	}
	for _, tt := range tests {
		author := roster.BaselineAuthor(tt.round)
		injector, ok := roster.FirstInRotationExcluding(tt.round, author)
		if !ok {
			t.Fatalf("round %d: no injector", tt.round)
		}
		fixer, ok := roster.FirstInRotationExcluding(tt.round, author, injector)
		if !ok {
			t.Fatalf("round %d: no fixer", tt.round)
		}
		if author != tt.author || injector != tt.injector || fixer != tt.fixer {
			t.Errorf("round %d roles = (%s, %s, %s), want (%s, %s, %s)",
				tt.round, author, injector, fixer, tt.author, tt.injector, tt.fixer)
		}
	}
}

func TestRoster_MembersIsCopy(t *testing.T) {
	roster, _ := NewRoster([]string{"a", "b"})
	members := roster.Members()
	members[0] = "mutated"

	if roster.BaselineAuthor(1) != "a" {
		t.Error("mutating the returned slice must not affect the roster")
	}
}
