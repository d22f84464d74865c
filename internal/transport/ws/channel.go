// Package ws provides the WebSocket transport the chat session talks through.
//
// A Channel owns one gorilla/websocket client connection. Outbound frames go through
// a bounded queue drained by a write pump; inbound text frames are delivered in
// arrival order on Inbound, which is closed once the connection ends.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"yewchat/internal/pkg/errs"
	"yewchat/internal/pkg/logx"
)

const (
	// timeout for writing a single frame to the server.
	writeWait = 10 * time.Second

	// maximum size in bytes of a frame read from the server.
	maxMessageSize = 1 << 20

	// DefaultSendQueueSize is the outbound queue length used when Options leaves it at zero.
	DefaultSendQueueSize = 1000
)

// ErrSendQueueFull is returned by Send when the outbound queue has no room left.
var ErrSendQueueFull = errors.New("ws: send queue full")

// Options tunes Dial.
type Options struct {
	// SendQueueSize bounds the number of frames waiting to be written.
	SendQueueSize int

	// Header is sent with the opening handshake.
	Header http.Header

	// Dialer defaults to websocket.DefaultDialer.
	Dialer *websocket.Dialer
}

// Channel is an open connection to the chat server.
type Channel struct {
	conn     *websocket.Conn
	inbound  chan string
	send     chan string
	done     chan struct{}
	doneOnce sync.Once
	wg       sync.WaitGroup
	logger   zerolog.Logger
}

// Dial opens a connection to url and starts its read and write pumps.
func Dial(ctx context.Context, url string, opts Options) (*Channel, error) {
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, url, opts.Header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chat server: %w", err)
	}

	c := newChannel(conn, opts.SendQueueSize)
	c.logger = logx.Component("transport", "server_url", url)

	c.wg.Add(2)
	go c.readPump()
	go c.writePump()

	c.logger.Info().Msg("Connected to chat server.")

	return c, nil
}

func newChannel(conn *websocket.Conn, queueSize int) *Channel {
	if queueSize <= 0 {
		queueSize = DefaultSendQueueSize
	}

	return &Channel{
		conn:    conn,
		inbound: make(chan string),
		send:    make(chan string, queueSize),
		done:    make(chan struct{}),
		logger:  logx.Component("transport"),
	}
}

// Send queues msg without blocking. It fails when the channel is closed or the
// queue is full; nothing is retried.
func (c *Channel) Send(msg string) error {
	select {
	case <-c.done:
		return errs.NewError(errs.ErrChannelClosed)
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Send queue full, rejecting frame.")
		return ErrSendQueueFull
	}
}

// Inbound delivers frames from the server. It is closed when the connection ends.
func (c *Channel) Inbound() <-chan string {
	return c.inbound
}

// Close sends a normal close frame, closes the connection and waits for both pumps.
func (c *Channel) Close() error {
	c.shutdown()
	c.wg.Wait()
	return nil
}

func (c *Channel) shutdown() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// readPump forwards every data frame to inbound until the connection fails.
func (c *Channel) readPump() {
	defer c.wg.Done()
	defer close(c.inbound)
	defer c.shutdown()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("Connection to chat server lost.")
			} else {
				c.logger.Info().Err(err).Msg("Connection to chat server closed.")
			}
			return
		}

		select {
		case c.inbound <- string(data):
		case <-c.done:
			return
		}
	}
}

// writePump drains the send queue. On shutdown it flushes frames already accepted by
// Send, says goodbye and closes the socket, which also unblocks readPump.
func (c *Channel) writePump() {
	defer c.wg.Done()

	defer func() {
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error.")
		}
	}()

	for {
		select {
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				c.logger.Error().Err(err).Msg("Error writing frame.")
				c.shutdown()
				return
			}

		case <-c.done:
			if err := c.flush(); err != nil {
				c.logger.Warn().Err(err).Int("dropped", len(c.send)).Msg("Failed to flush send queue on close.")
			}

			closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.CloseMessage, closeMessage); err != nil {
				c.logger.Debug().Err(err).Msg("Failed to send close frame.")
			}
			return
		}
	}
}

// flush writes every frame still queued, stopping at the first write error.
func (c *Channel) flush() error {
	for {
		select {
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (c *Channel) write(msg string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	return c.conn.WriteMessage(websocket.TextMessage, []byte(msg))
}
