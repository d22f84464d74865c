/*
Package user contains the client-side representation of a chat participant.

A Profile is derived from a username alone; nothing about it is transmitted. Avatar
URLs are a pure function of the name, with one style for roster entries and another
for message senders that are not on the roster.
*/
package user

import (
	"fmt"
	"net/url"
)

const (
	// avatarBaseURL is the avatar service every generated URL points at.
	avatarBaseURL = "https://avatars.dicebear.com/api"

	// RosterAvatarStyle is the avatar style used for users on the online roster.
	RosterAvatarStyle = "adventurer-neutral"

	// SenderAvatarStyle is the fallback style for senders missing from the roster.
	SenderAvatarStyle = "identicon"
)

// Profile is one online user as shown in the roster.
type Profile struct {
	// Name is the username exactly as the server reported it.
	Name string `json:"name"`

	// AvatarURL is RosterAvatar(Name).
	AvatarURL string `json:"avatar"`
}

// NewProfile builds the roster profile for name.
func NewProfile(name string) Profile {
	return Profile{
		Name:      name,
		AvatarURL: RosterAvatar(name),
	}
}

// RosterAvatar returns the avatar URL shown for name in the online roster.
func RosterAvatar(name string) string {
	return avatarURL(RosterAvatarStyle, name)
}

// SenderAvatar returns the avatar URL for a message sender that has no roster entry.
func SenderAvatar(name string) string {
	return avatarURL(SenderAvatarStyle, name)
}

// avatarURL escapes name as a single path segment so that names containing '/' or '?'
// cannot change the shape of the URL.
func avatarURL(style, name string) string {
	return fmt.Sprintf("%s/%s/%s.svg", avatarBaseURL, style, url.PathEscape(name))
}
