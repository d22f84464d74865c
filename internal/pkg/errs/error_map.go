/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
log output and HTTP responses.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request body is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Wire Protocol and Transport Errors
	ErrDecodeFrame:   {Code: ErrDecodeFrame, Message: "Malformed frame: %s."},
	ErrEncodeFrame:   {Code: ErrEncodeFrame, Message: "Frame could not be encoded."},
	ErrSendFrame:     {Code: ErrSendFrame, Message: "Message could not be sent.", Status: http.StatusBadGateway},
	ErrChannelClosed: {Code: ErrChannelClosed, Message: "Connection to the chat server is closed.", Status: http.StatusBadGateway},

	// 3xxx: Session Errors
	ErrMissingContext: {Code: ErrMissingContext, Message: "A username is required to start chatting."},
	ErrSessionClosed:  {Code: ErrSessionClosed, Message: "Chat session has ended.", Status: http.StatusServiceUnavailable},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
