/*
Package chat holds the client-side chat session: the state it keeps, the reducer that
applies inbound frames to it, and the single owner loop that serializes inbound
delivery with the user's outbound submits.

This file defines the state types.
*/
package chat

import (
	"slices"
	"strings"

	"yewchat/internal/app/user"
)

// imageSuffix marks a message body that is rendered as an inline image.
const imageSuffix = ".gif"

// ChatMessage is one line in the feed, in arrival order.
type ChatMessage struct {
	From string `json:"from"`
	Body string `json:"body"`
}

// IsImage reports whether the body is shown as an inline image. Only the literal,
// case-sensitive suffix ".gif" counts.
func (m ChatMessage) IsImage() bool {
	return strings.HasSuffix(m.Body, imageSuffix)
}

// State is everything the client knows during one session.
type State struct {
	// Roster is the last user list the server sent, in server order.
	Roster []user.Profile `json:"roster"`

	// Messages grows by one entry per inbound message frame and is never reordered or pruned.
	Messages []ChatMessage `json:"messages"`
}

// clip returns a copy of s whose slices have no spare capacity, so a holder that
// appends to them gets a fresh array instead of writing into the owner's storage.
func (s State) clip() State {
	return State{
		Roster:   slices.Clip(s.Roster),
		Messages: slices.Clip(s.Messages),
	}
}
