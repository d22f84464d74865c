package ws_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"yewchat/internal/pkg/errs"
	"yewchat/internal/transport/ws"
)

var upgrader = websocket.Upgrader{}

// newServer starts a WebSocket server running handle for every connection.
func newServer(t *testing.T, handle func(conn *websocket.Conn)) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade: %v", err)
			return
		}
		defer conn.Close()

		handle(conn)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *ws.Channel {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	c, err := ws.Dial(ctx, url, ws.Options{})
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c
}

func TestDial_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := ws.Dial(ctx, "ws://127.0.0.1:1/ws", ws.Options{}); err == nil {
		t.Error("expected an error dialing a closed port")
	}
}

func TestChannel_Send(t *testing.T) {
	received := make(chan string, 1)

	url := newServer(t, func(conn *websocket.Conn) {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			t.Errorf("message type = %d, want text", msgType)
		}
		received <- string(data)
		conn.ReadMessage()
	})

	c := dial(t, url)

	frame := `{"messageType":"register","data":"alice","dataArray":null}`
	if err := c.Send(frame); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	select {
	case got := <-received:
		if got != frame {
			t.Errorf("server received %q, want %q", got, frame)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for frame")
	}
}

func TestChannel_InboundOrder(t *testing.T) {
	frames := []string{"one", "two", "three"}

	url := newServer(t, func(conn *websocket.Conn) {
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		conn.ReadMessage()
	})

	c := dial(t, url)

	for i, want := range frames {
		select {
		case got := <-c.Inbound():
			if got != want {
				t.Errorf("frame %d = %q, want %q", i, got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for frame %d", i)
		}
	}
}

func TestChannel_InboundClosedWhenServerLeaves(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	})

	c := dial(t, url)

	select {
	case _, ok := <-c.Inbound():
		if ok {
			t.Error("expected inbound to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for inbound to close")
	}
}

func TestChannel_SendAfterClose(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})

	c := dial(t, url)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	err := c.Send("late")
	if err == nil {
		t.Fatal("expected Send after Close to fail")
	}
	if !errs.HasCode(err, errs.ErrChannelClosed) {
		t.Errorf("Send() error = %v, want code %d", err, errs.ErrChannelClosed)
	}

	if _, ok := <-c.Inbound(); ok {
		t.Error("inbound should be closed after Close")
	}
}

func TestChannel_CloseTwice(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})

	c := dial(t, url)
	c.Close()
	c.Close()
}
