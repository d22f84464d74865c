// Package pipe provides an in-memory chat channel whose server side is driven by the
// caller. Tests and local demos use it in place of a WebSocket connection.
package pipe

import (
	"sync"

	"yewchat/internal/pkg/errs"
)

// Pipe is an in-memory duplex channel.
type Pipe struct {
	// inboundMu guards closing inbound against concurrent Deliver calls.
	inboundMu sync.RWMutex
	inbound   chan string

	mu      sync.Mutex
	sent    []string
	sendErr error
	closed  bool
	notify  chan string
}

// New returns an open Pipe whose inbound side buffers up to buffer frames.
func New(buffer int) *Pipe {
	return &Pipe{
		inbound: make(chan string, buffer),
	}
}

// Send records msg as sent by the client. It fails once the pipe is closed or after
// FailSends installed an error.
func (p *Pipe) Send(msg string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errs.NewError(errs.ErrChannelClosed)
	}
	if p.sendErr != nil {
		return p.sendErr
	}

	p.sent = append(p.sent, msg)
	if p.notify != nil {
		select {
		case p.notify <- msg:
		default:
		}
	}
	return nil
}

// Inbound is the client's view of frames delivered by the server side.
func (p *Pipe) Inbound() <-chan string {
	return p.inbound
}

// Close ends the pipe and closes Inbound. It is safe to call more than once.
func (p *Pipe) Close() error {
	p.inboundMu.Lock()
	defer p.inboundMu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.closed = true
		close(p.inbound)
	}
	return nil
}

// Deliver plays the server side and hands msg to the client. It blocks while the
// inbound buffer is full and reports false when the pipe is already closed.
func (p *Pipe) Deliver(msg string) bool {
	p.inboundMu.RLock()
	defer p.inboundMu.RUnlock()

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if closed {
		return false
	}
	p.inbound <- msg
	return true
}

// Sent returns a copy of every frame the client sent so far.
func (p *Pipe) Sent() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.sent))
	copy(out, p.sent)
	return out
}

// Outbound returns a channel that receives each frame the client sends from now on.
// Frames are dropped when the channel's buffer is full.
func (p *Pipe) Outbound(buffer int) <-chan string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.notify = make(chan string, buffer)
	return p.notify
}

// FailSends makes every following Send return err. A nil err restores normal sends.
func (p *Pipe) FailSends(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sendErr = err
}
