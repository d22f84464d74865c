package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"yewchat/internal/app/wire"
	"yewchat/internal/pkg/errs"
	"yewchat/internal/pkg/logx"
)

// maxLoggedFrame bounds how much of a dropped frame ends up in the log line.
const maxLoggedFrame = 256

// Channel is the open duplex connection to the chat server.
type Channel interface {
	// Send queues one frame for delivery.
	Send(msg string) error

	// Inbound delivers frames in arrival order and is closed when the connection ends.
	Inbound() <-chan string

	// Close shuts the connection down.
	Close() error
}

// submitRequest asks the owner loop to send the compose input.
type submitRequest struct {
	// text, when set, replaces the compose input before it is read.
	text *string

	// result receives the outcome once the input has been sent and cleared.
	result chan error
}

// Session is one open channel plus the state built from it.
//
// Run is the only writer of the state: inbound frames and outbound submits are both
// handled on its goroutine, one at a time. Snapshot and OnDirty are the read side.
type Session struct {
	// ID identifies the session in logs.
	ID string

	// Username is the name registered with the server.
	Username string

	channel Channel
	compose ComposeInput

	// mu guards state. Only the Run goroutine writes it.
	mu    sync.RWMutex
	state State

	subMu       sync.Mutex
	subscribers map[int]func(State)
	nextSubID   int

	submits chan submitRequest
	done    chan struct{}
	running atomic.Bool

	logger zerolog.Logger
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.ID = id
	}
}

// NewSession prepares a session for username over channel. It fails with
// errs.ErrMissingContext when no username is available.
func NewSession(username string, channel Channel, opts ...Option) (*Session, error) {
	if username == "" {
		return nil, errs.NewError(errs.ErrMissingContext)
	}

	s := &Session{
		ID:          uuid.NewString(),
		Username:    username,
		channel:     channel,
		subscribers: make(map[int]func(State)),
		submits:     make(chan submitRequest),
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = logx.Component("session",
		"session_id", s.ID,
		"username", s.Username,
	)

	return s, nil
}

// Start sends the Register frame once. A failed send is logged and returned for
// reporting only; the session stays usable and the roster simply stays empty.
func (s *Session) Start() error {
	raw, err := wire.Encode(wire.Register{Username: s.Username})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode register frame.")
		return err
	}

	if err := s.channel.Send(raw); err != nil {
		sendErr := errs.Wrap(errs.ErrSendFrame, err)
		s.logger.Warn().Err(sendErr).Msg("Register frame not sent. Roster stays empty until the server responds.")
		return sendErr
	}

	s.logger.Debug().Msg("Register frame sent.")
	return nil
}

// Run consumes inbound frames and submit requests until the channel's inbound stream
// closes (nil is returned) or ctx is done (ctx.Err() is returned). It must be called
// exactly once.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("chat: session is already running")
	}
	defer close(s.done)

	s.logger.Info().Msg("Session loop started.")

	inbound := s.channel.Inbound()

	for {
		select {
		case raw, ok := <-inbound:
			if !ok {
				s.logger.Info().Msg("Channel closed. Session loop finished.")
				return nil
			}
			s.handleInbound(raw)

		case req := <-s.submits:
			if req.text != nil {
				s.compose.Set(*req.text)
			}
			req.result <- s.handleSubmit()

		case <-ctx.Done():
			s.logger.Info().Msg("Session loop cancelled.")
			return ctx.Err()
		}
	}
}

// Done is closed when Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Compose returns the session's compose input.
func (s *Session) Compose() *ComposeInput {
	return &s.compose
}

// Submit sends whatever the compose input currently holds, empty text included, and
// then clears the input whether or not the send succeeded. Send failures are not
// retried; they are logged and returned.
func (s *Session) Submit(ctx context.Context) error {
	return s.submit(ctx, submitRequest{result: make(chan error, 1)})
}

// SubmitText sets the compose input to text and submits it as one step on the owner
// loop, so concurrent callers cannot interleave between typing and sending.
func (s *Session) SubmitText(ctx context.Context, text string) error {
	return s.submit(ctx, submitRequest{text: &text, result: make(chan error, 1)})
}

func (s *Session) submit(ctx context.Context, req submitRequest) error {
	select {
	case s.submits <- req:
	case <-s.done:
		return errs.NewError(errs.ErrSessionClosed)
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current state. The snapshot never changes afterwards and
// appending to its slices does not affect the session.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clip()
}

// OnDirty registers fn to be called with the new state after every state-changing
// frame. fn runs on the session loop and must not block. The returned function
// removes the subscription.
func (s *Session) OnDirty(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// handleInbound decodes and applies one frame. Malformed frames are dropped.
func (s *Session) handleInbound(raw string) {
	frame, err := wire.Decode(raw)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("frame", truncate(raw, maxLoggedFrame)).
			Msg("Dropping malformed frame.")
		return
	}

	next, dirty := Reduce(s.state, frame)
	if !dirty {
		s.logger.Debug().Str("msg_type", string(frame.Type())).Msg("Frame left state unchanged.")
		return
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.logger.Debug().
		Str("msg_type", string(frame.Type())).
		Int("roster_len", len(next.Roster)).
		Int("messages_len", len(next.Messages)).
		Msg("State updated.")

	s.notify(next.clip())
}

// handleSubmit reads, sends and clears the compose input.
func (s *Session) handleSubmit() error {
	text := s.compose.Value()
	defer s.compose.Clear()

	raw, err := wire.Encode(wire.Outgoing{Body: text})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode message frame.")
		return err
	}

	if err := s.channel.Send(raw); err != nil {
		sendErr := errs.Wrap(errs.ErrSendFrame, err)
		s.logger.Warn().Err(sendErr).Msg("Message not sent.")
		return sendErr
	}

	return nil
}

func (s *Session) notify(state State) {
	s.subMu.Lock()
	subscribers := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}

// truncate shortens s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
