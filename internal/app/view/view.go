/*
Package view projects chat state into a description of what the chat screen shows.

Projection is pure: the same state always yields the same Page, and nothing here talks
to the network. The CLI and the browser surface both render from a Page.
*/
package view

import (
	"yewchat/internal/app/chat"
	"yewchat/internal/app/user"
)

const (
	// Title is the heading shown above the roster.
	Title = "YewChat"

	// OnlineStatus is the status line shown under every roster entry.
	OnlineStatus = "Online"

	// EmptyRosterText is shown instead of the roster when nobody is online.
	EmptyRosterText = "No users online"

	// EmptyFeedText is shown instead of the feed before the first message arrives.
	EmptyFeedText = "No messages yet"

	// SelfSender is the sender name whose messages get the accent treatment.
	SelfSender = "You"
)

// Kind tells how a message body is rendered.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// RosterEntry is one row of the online list.
type RosterEntry struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
	Status    string `json:"status"`
}

// MessageEntry is one rendered feed line.
type MessageEntry struct {
	From      string `json:"from"`
	Body      string `json:"body"`
	AvatarURL string `json:"avatar"`
	Kind      Kind   `json:"kind"`

	// Accent marks messages sent under the literal name "You".
	Accent bool `json:"accent"`
}

// Page is the full screen description for one state.
type Page struct {
	Title       string         `json:"title"`
	ActiveCount int            `json:"activeCount"`
	Roster      []RosterEntry  `json:"roster"`
	Messages    []MessageEntry `json:"messages"`

	// EmptyRoster and EmptyFeed hold the placeholder text for an empty section.
	EmptyRoster string `json:"emptyRoster,omitempty"`
	EmptyFeed   string `json:"emptyFeed,omitempty"`
}

// Project builds the Page for s.
func Project(s chat.State) Page {
	page := Page{
		Title:       Title,
		ActiveCount: len(s.Roster),
		Roster:      make([]RosterEntry, 0, len(s.Roster)),
		Messages:    make([]MessageEntry, 0, len(s.Messages)),
	}

	for _, p := range s.Roster {
		page.Roster = append(page.Roster, RosterEntry{
			Name:      p.Name,
			AvatarURL: p.AvatarURL,
			Status:    OnlineStatus,
		})
	}

	for _, m := range s.Messages {
		kind := KindText
		if m.IsImage() {
			kind = KindImage
		}

		page.Messages = append(page.Messages, MessageEntry{
			From:      m.From,
			Body:      m.Body,
			AvatarURL: SenderAvatar(s.Roster, m.From),
			Kind:      kind,
			Accent:    m.From == SelfSender,
		})
	}

	if len(page.Roster) == 0 {
		page.EmptyRoster = EmptyRosterText
	}
	if len(page.Messages) == 0 {
		page.EmptyFeed = EmptyFeedText
	}

	return page
}

// SenderAvatar returns the avatar of the first roster entry named from, or the
// identicon fallback when from is not on the roster.
func SenderAvatar(roster []user.Profile, from string) string {
	for _, p := range roster {
		if p.Name == from {
			return p.AvatarURL
		}
	}
	return user.SenderAvatar(from)
}
