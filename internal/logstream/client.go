package logstream

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// streamPath is the websocket path serving container logs.
const streamPath = "/docker-container-logs"

// ConnState is the lifecycle state of the stream connection.
type ConnState string

const (
	StateIdle         ConnState = "idle"
	StateConnecting   ConnState = "connecting"
	StateConnected    ConnState = "connected"
	StateDisconnected ConnState = "disconnected"
	StateError        ConnState = "error"
)

// Events are the client's callbacks. They are invoked from the goroutine
// driving the connection; handlers must not call back into the Client.
type Events struct {
	// OnState fires on every state transition; errMsg is non-empty only for
	// StateError.
	OnState func(state ConnState, errMsg string)
	// OnLines fires for each accepted batch of log lines, after the batch
	// has been appended to the buffer.
	OnLines func(lines []string)
}

// Snapshot describes the current connection for display.
type Snapshot struct {
	ID     string
	Target string
	State  ConnState
	Err    string
}

// Client owns the single log stream of one viewed service. Reconnection is
// always close-then-open: no two live sockets for the same instance ever
// coexist, and frames from a superseded socket are never delivered once a
// reconnect has begun. There is no automatic reconnect; a drop stays
// surfaced until the view triggers Connect again.
type Client struct {
	endpoint string
	events   Events
	dialer   *websocket.Dialer

	mu      sync.Mutex
	conn    *websocket.Conn
	connID  string
	target  string
	gen     uint64
	state   ConnState
	lastErr string
	buffer  *Buffer
}

// New creates a Client for the given normalized server URL.
func New(endpoint string, events Events) *Client {
	return &Client{
		endpoint: endpoint,
		events:   events,
		// No handshake timeout: only an explicit Disconnect or a new
		// Connect supersedes a pending attempt.
		dialer: &websocket.Dialer{},
		state:  StateIdle,
		buffer: NewBuffer(),
	}
}

// Connect tears down any existing socket and opens a new one for the target
// container with the given parameters and access token. A missing target or
// token moves straight to StateError without a dial attempt.
func (c *Client) Connect(target, token string, params Params) {
	c.mu.Lock()
	c.closeLocked()

	if strings.TrimSpace(target) == "" {
		c.setStateLocked(StateError, "container not found for this resource")
		c.notifyUnlock()
		return
	}
	if token == "" {
		c.setStateLocked(StateError, "missing access token")
		c.notifyUnlock()
		return
	}

	c.target = target
	c.gen++
	gen := c.gen
	c.setStateLocked(StateConnecting, "")
	c.notifyUnlock()

	streamURL, err := c.streamURL(target, params)
	if err != nil {
		c.failIfCurrent(gen, err)
		return
	}

	header := http.Header{}
	header.Set("x-api-key", token)
	conn, resp, err := c.dialer.Dial(streamURL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		c.failIfCurrent(gen, err)
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		// Superseded while dialing.
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.connID = uuid.NewString()
	c.setStateLocked(StateConnected, "")
	c.notifyUnlock()

	go c.readLoop(conn, gen)
}

// ApplyParams validates the new parameter set, clears the buffer, and runs
// exactly one full reconnect cycle with the new parameters. Invalid
// parameters are rejected before any connection attempt.
func (c *Client) ApplyParams(target, token string, params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	c.buffer.Clear()
	c.Connect(target, token, params)
	return nil
}

// Disconnect closes the socket if one is open and cancels a dial still in
// flight. It is a no-op when nothing is open or pending.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.conn == nil && c.state != StateConnecting {
		c.mu.Unlock()
		return
	}
	c.closeLocked()
	c.setStateLocked(StateDisconnected, "")
	c.notifyUnlock()
}

// State returns the current connection snapshot.
func (c *Client) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{ID: c.connID, Target: c.target, State: c.state, Err: c.lastErr}
}

// Lines returns the buffered log lines in arrival order.
func (c *Client) Lines() []string {
	return c.buffer.Lines()
}

// ClearBuffer discards the buffered lines, used when the viewed resource
// changes without an immediate reconnect.
func (c *Client) ClearBuffer() {
	c.buffer.Clear()
}

func (c *Client) streamURL(target string, params Params) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	default:
		u.Scheme = "wss"
	}
	u.Path = streamPath
	u.RawQuery = params.query(target).Encode()
	return u.String(), nil
}

// readLoop pumps frames from one socket until it dies. gen guards against a
// superseded socket appending lines after a reconnect began.
func (c *Client) readLoop(conn *websocket.Conn, gen uint64) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if gen != c.gen {
				c.mu.Unlock()
				return
			}
			c.conn = nil
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.setStateLocked(StateDisconnected, "")
			} else {
				c.setStateLocked(StateError, formatStreamError(err))
			}
			c.notifyUnlock()
			return
		}

		lines := normalizePayload(frame)
		if len(lines) == 0 {
			continue
		}
		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			return
		}
		c.buffer.Append(lines...)
		onLines := c.events.OnLines
		c.mu.Unlock()
		if onLines != nil {
			onLines(lines)
		}
	}
}

// failIfCurrent records a connection failure unless a newer Connect or
// Disconnect already superseded this attempt.
func (c *Client) failIfCurrent(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.setStateLocked(StateError, formatStreamError(err))
	c.notifyUnlock()
}

// closeLocked shuts the current socket and invalidates its read loop.
func (c *Client) closeLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.gen++
	c.connID = ""
}

func (c *Client) setStateLocked(state ConnState, errMsg string) {
	c.state = state
	c.lastErr = errMsg
}

// notifyUnlock releases the lock and fires OnState for the state just set.
func (c *Client) notifyUnlock() {
	state := c.state
	errMsg := c.lastErr
	onState := c.events.OnState
	c.mu.Unlock()
	if onState != nil {
		onState(state, errMsg)
	}
}

// formatStreamError extracts a human-readable message from a socket error.
func formatStreamError(err error) string {
	if err == nil {
		return "failed to connect to log stream"
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) && closeErr.Text != "" {
		return closeErr.Text
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return "failed to connect to log stream"
}
