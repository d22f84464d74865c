package pipe_test

import (
	"errors"
	"slices"
	"testing"

	"yewchat/internal/pkg/errs"
	"yewchat/internal/transport/pipe"
)

func TestPipe_SendRecordsFrames(t *testing.T) {
	p := pipe.New(1)

	for _, msg := range []string{"a", "b"} {
		if err := p.Send(msg); err != nil {
			t.Fatalf("Send(%q) error = %v", msg, err)
		}
	}

	if got := p.Sent(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Sent() = %v, want [a b]", got)
	}
}

func TestPipe_DeliverAndClose(t *testing.T) {
	p := pipe.New(2)

	if !p.Deliver("x") {
		t.Fatal("Deliver() on an open pipe should succeed")
	}
	if got := <-p.Inbound(); got != "x" {
		t.Errorf("Inbound() = %q, want x", got)
	}

	p.Close()
	p.Close()

	if p.Deliver("y") {
		t.Error("Deliver() after Close should report false")
	}
	if _, ok := <-p.Inbound(); ok {
		t.Error("Inbound should be closed")
	}
	if err := p.Send("z"); !errs.HasCode(err, errs.ErrChannelClosed) {
		t.Errorf("Send() after Close error = %v, want code %d", err, errs.ErrChannelClosed)
	}
}

func TestPipe_FailSends(t *testing.T) {
	p := pipe.New(0)
	boom := errors.New("boom")

	p.FailSends(boom)
	if err := p.Send("a"); !errors.Is(err, boom) {
		t.Errorf("Send() error = %v, want boom", err)
	}

	p.FailSends(nil)
	if err := p.Send("b"); err != nil {
		t.Errorf("Send() error = %v, want nil", err)
	}

	if got := p.Sent(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Sent() = %v, want [b]", got)
	}
}

func TestPipe_Outbound(t *testing.T) {
	p := pipe.New(0)
	out := p.Outbound(1)

	p.Send("hello")

	if got := <-out; got != "hello" {
		t.Errorf("Outbound() = %q, want hello", got)
	}
}
