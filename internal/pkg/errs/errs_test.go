package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewError(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		details     []any
		wantCode    int
		wantMessage string
		wantStatus  int
	}{
		{"known code", ErrSessionClosed, nil, ErrSessionClosed, "Chat session has ended.", http.StatusServiceUnavailable},
		{"template with details", ErrDecodeFrame, []any{"unknown messageType"}, ErrDecodeFrame, "Malformed frame: unknown messageType.", http.StatusOK},
		{"details without placeholder are ignored", ErrSendFrame, []any{"extra"}, ErrSendFrame, "Message could not be sent.", http.StatusBadGateway},
		{"unknown code", 9999, nil, ErrUnknown, "Something went wrong. Please try again.", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.code, tt.details...)

			if err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", err.Code, tt.wantCode)
			}
			if err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMessage)
			}
			if err.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", err.Status, tt.wantStatus)
			}
		})
	}
}

func TestNewError_DoesNotShareTemplate(t *testing.T) {
	first := NewError(ErrDecodeFrame, "a")
	second := NewError(ErrDecodeFrame, "b")

	if first.Message == second.Message {
		t.Errorf("messages should differ, both are %q", first.Message)
	}
	if errorMap[ErrDecodeFrame].Message != "Malformed frame: %s." {
		t.Errorf("template was modified: %q", errorMap[ErrDecodeFrame].Message)
	}
}

func TestWrapAndHasCode(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("submit: %w", Wrap(ErrSendFrame, cause))

	if !HasCode(err, ErrSendFrame) {
		t.Error("HasCode() = false for a wrapped CustomError")
	}
	if HasCode(err, ErrDecodeFrame) {
		t.Error("HasCode() = true for a different code")
	}
	if HasCode(cause, ErrSendFrame) {
		t.Error("HasCode() = true for a plain error")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through CustomError")
	}
}

func TestCustomError_Error(t *testing.T) {
	plain := NewError(ErrChannelClosed)
	if got, want := plain.Error(), "error code 2102: Connection to the chat server is closed."; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Wrap(ErrChannelClosed, errors.New("eof"))
	if got, want := wrapped.Error(), "error code 2102: Connection to the chat server is closed.: eof"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestHasCode_NestedCustomErrors(t *testing.T) {
	inner := NewError(ErrChannelClosed)
	err := fmt.Errorf("submit: %w", Wrap(ErrSendFrame, inner))

	tests := []struct {
		name string
		code int
		want bool
	}{
		{"outer code", ErrSendFrame, true},
		{"inner code", ErrChannelClosed, true},
		{"absent code", ErrDecodeFrame, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(err, tt.code); got != tt.want {
				t.Errorf("HasCode(%v, %d) = %v, want %v", err, tt.code, got, tt.want)
			}
		})
	}

	if HasCode(nil, ErrUnknown) {
		t.Error("HasCode(nil) = true, want false")
	}
}
