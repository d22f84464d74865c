package chat

import (
	"yewchat/internal/app/user"
	"yewchat/internal/app/wire"
)

// Reduce applies one inbound frame to s and reports whether the state changed.
//
// Users replaces the roster wholesale with the server's list, keeping order and
// duplicates. Message appends one entry. Every other frame leaves s untouched and
// reports false, so the projection is not re-rendered for it.
//
// Reduce never modifies the elements visible through s, but it may reuse the spare
// capacity of s.Messages. Callers pass the latest state; holders of older states
// must clip them first (see State.clip).
func Reduce(s State, f wire.Frame) (State, bool) {
	switch frame := f.(type) {
	case wire.Users:
		roster := make([]user.Profile, 0, len(frame.Usernames))
		for _, name := range frame.Usernames {
			roster = append(roster, user.NewProfile(name))
		}
		return State{Roster: roster, Messages: s.Messages}, true

	case wire.Message:
		return State{
			Roster:   s.Roster,
			Messages: append(s.Messages, ChatMessage{From: frame.From, Body: frame.Body}),
		}, true

	default:
		return s, false
	}
}
