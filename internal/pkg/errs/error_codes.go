/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific protocol, session and request errors both inside
the client core and on the browser-facing HTTP surface.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body exceeded the allowed size.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Wire Protocol and Transport Errors
const (
	// ErrDecodeFrame indicates that an inbound frame was malformed, carried an unknown
	// messageType, or had a missing or mis-shaped payload.
	ErrDecodeFrame = 2001

	// ErrEncodeFrame indicates that an outbound frame could not be serialized.
	ErrEncodeFrame = 2002

	// ErrSendFrame indicates that the transport channel rejected an outbound frame.
	ErrSendFrame = 2101

	// ErrChannelClosed indicates that the transport channel is no longer open.
	ErrChannelClosed = 2102
)

// 3xxx: Session Errors
const (
	// ErrMissingContext indicates that no username was available when the session tried to bootstrap.
	ErrMissingContext = 3001

	// ErrSessionClosed indicates that the session owner loop is not running anymore.
	ErrSessionClosed = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general internal error.
	ErrUnknown = 5000
)
