package user_test

import (
	"testing"

	"yewchat/internal/app/user"
)

func TestRosterAvatar(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "alice", "https://avatars.dicebear.com/api/adventurer-neutral/alice.svg"},
		{"name with space", "bob smith", "https://avatars.dicebear.com/api/adventurer-neutral/bob%20smith.svg"},
		{"name with slash", "a/b", "https://avatars.dicebear.com/api/adventurer-neutral/a%2Fb.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := user.RosterAvatar(tt.in); got != tt.want {
				t.Errorf("RosterAvatar(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSenderAvatar(t *testing.T) {
	want := "https://avatars.dicebear.com/api/identicon/bob.svg"
	if got := user.SenderAvatar("bob"); got != want {
		t.Errorf("SenderAvatar(bob) = %q, want %q", got, want)
	}
}

func TestAvatars_DeterministicAndDistinct(t *testing.T) {
	for _, name := range []string{"alice", "bob", "", "You", "名前"} {
		if user.RosterAvatar(name) != user.RosterAvatar(name) {
			t.Errorf("RosterAvatar(%q) is not deterministic", name)
		}
		if user.SenderAvatar(name) != user.SenderAvatar(name) {
			t.Errorf("SenderAvatar(%q) is not deterministic", name)
		}
		if user.RosterAvatar(name) == user.SenderAvatar(name) {
			t.Errorf("RosterAvatar(%q) and SenderAvatar(%q) must differ", name, name)
		}
	}
}

func TestNewProfile(t *testing.T) {
	p := user.NewProfile("alice")
	if p.Name != "alice" {
		t.Errorf("Name = %q, want alice", p.Name)
	}
	if p.AvatarURL != user.RosterAvatar("alice") {
		t.Errorf("AvatarURL = %q, want roster avatar", p.AvatarURL)
	}
}
