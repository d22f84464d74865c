/*
Package handler provides the HTTP handler function for the live chat screen WebSocket.

This file contains HandleLive, which upgrades the connection, pushes the projected chat
screen once on connect and again after every state change, and keeps the connection
alive with pings until the browser goes away or the session ends.
*/
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"yewchat/internal/app/chat"
	"yewchat/internal/app/view"
	"yewchat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed to wait for a Pong message from the browser.
	pongWait = 60 * time.Second

	// frequency at which a Ping message is sent.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the browser. The live
	// socket is push-only, so anything larger than a control frame is unexpected.
	maxMessageSize = 512
)

// liveViewer is one browser tab following the chat screen.
type liveViewer struct {
	conn *websocket.Conn
	deps *AppDeps

	// dirty holds at most one pending redraw. Bursts of state changes collapse into a
	// single push of the latest snapshot.
	dirty chan struct{}

	// closed is closed when the read pump ends.
	closed chan struct{}

	logger zerolog.Logger
}

// HandleLive creates an HTTP HandlerFunc that streams the chat screen over a WebSocket.
func HandleLive(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade live connection to WebSocket")
			return
		}

		v := &liveViewer{
			conn:   conn,
			deps:   deps,
			dirty:  make(chan struct{}, 1),
			closed: make(chan struct{}),
			logger: logx.Component("live", "session_id", deps.Session.ID),
		}

		v.markDirty()
		cancel := deps.Session.OnDirty(func(chat.State) { v.markDirty() })
		defer cancel()

		v.logger.Info().Msg("Live viewer connected.")

		go v.readPump()
		v.writePump()

		v.logger.Info().Msg("Live viewer disconnected.")
	}
}

// markDirty schedules a redraw without blocking the session loop.
func (v *liveViewer) markDirty() {
	select {
	case v.dirty <- struct{}{}:
	default:
	}
}

// readPump discards inbound messages and tracks pongs. It ends when the browser closes
// the connection or stops answering pings.
func (v *liveViewer) readPump() {
	defer close(v.closed)

	v.conn.SetReadLimit(maxMessageSize)

	if err := v.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		v.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	v.conn.SetPongHandler(func(string) error {
		return v.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				v.logger.Info().Err(err).Msg("Live viewer read error")
			}
			return
		}
	}
}

// writePump pushes the projected screen on every redraw and pings periodically. It owns
// every write to the connection and closes it on return.
func (v *liveViewer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case <-v.dirty:
			if err := v.push(); err != nil {
				v.logger.Warn().Err(err).Msg("Failed to push chat screen.")
				return
			}

		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-v.deps.Session.Done():
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			v.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "chat session ended"))
			return

		case <-v.closed:
			return
		}
	}
}

func (v *liveViewer) push() error {
	payload, err := json.Marshal(view.Project(v.deps.Session.Snapshot()))
	if err != nil {
		return err
	}

	v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return v.conn.WriteMessage(websocket.TextMessage, payload)
}
