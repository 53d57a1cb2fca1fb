package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
	"github.com/frahmantamala/budget-allocation/internal/core/events"
)

// reconnectDelays is the default backoff schedule; after the last entry the
// final delay repeats until the hub comes back.
var reconnectDelays = []time.Duration{0, 2 * time.Second, 10 * time.Second, 30 * time.Second}

type TokenSource interface {
	Token() string
}

type Config struct {
	HubURL           string
	HandshakeTimeout time.Duration
	ReconnectDelays  []time.Duration
}

// frame is the wire format both directions: the hub pushes
// {"event": ..., "data": ...} and the client sends join frames.
type frame struct {
	Event  string                 `json:"event,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
	Action string                 `json:"action,omitempty"`
	Group  string                 `json:"group,omitempty"`
}

// Channel maintains a websocket connection to the budget hub, republishing
// every named hub event onto the local event bus. Connection loss triggers
// automatic reconnects with backoff; group membership is restored after every
// successful reconnect.
type Channel struct {
	cfg    Config
	tokens TokenSource
	bus    *events.EventBus
	logger *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	groups []string

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewChannel(cfg Config, tokens TokenSource, bus *events.EventBus, logger *slog.Logger) *Channel {
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	if len(cfg.ReconnectDelays) == 0 {
		cfg.ReconnectDelays = reconnectDelays
	}
	return &Channel{
		cfg:    cfg,
		tokens: tokens,
		bus:    bus,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// GroupsFor returns the hub groups a user belongs to: one per role, plus a
// department group for users bound to a department.
func GroupsFor(u userDatamodel.User) []string {
	groups := []string{fmt.Sprintf("role-%s", u.Role.String())}
	if u.DepartmentID != nil {
		groups = append(groups, fmt.Sprintf("dep-%d", *u.DepartmentID))
	}
	return groups
}

// Start connects and begins the receive loop for the given user. It returns
// after the first connection attempt; reconnects happen in the background.
func (c *Channel) Start(ctx context.Context, u userDatamodel.User) {
	c.mu.Lock()
	c.groups = GroupsFor(u)
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run(ctx)
}

func (c *Channel) run(ctx context.Context) {
	defer c.wg.Done()

	attempt := 0
	for {
		delay := c.delayFor(attempt)
		if delay > 0 {
			c.logger.Info("reconnecting to hub", "attempt", attempt, "delay", delay)
		}
		select {
		case <-c.done:
			return
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		conn, err := c.dial(ctx)
		if err != nil {
			c.logger.Warn("hub connection failed", "error", err)
			attempt++
			continue
		}
		attempt = 0

		if err := c.joinGroups(conn); err != nil {
			c.logger.Warn("failed to join hub groups", "error", err)
			conn.Close()
			attempt++
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.logger.Info("connected to hub", "url", c.cfg.HubURL)

		c.readLoop(ctx, conn)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()

		select {
		case <-c.done:
			return
		case <-ctx.Done():
			return
		default:
		}
		attempt++
	}
}

func (c *Channel) delayFor(attempt int) time.Duration {
	delays := c.cfg.ReconnectDelays
	if attempt >= len(delays) {
		return delays[len(delays)-1]
	}
	return delays[attempt]
}

func (c *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
	header := http.Header{}
	if token := c.tokens.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := dialer.DialContext(ctx, c.cfg.HubURL, header)
	return conn, err
}

func (c *Channel) joinGroups(conn *websocket.Conn) error {
	c.mu.Lock()
	groups := make([]string, len(c.groups))
	copy(groups, c.groups)
	c.mu.Unlock()

	for _, group := range groups {
		if err := conn.WriteJSON(frame{Action: "join", Group: group}); err != nil {
			return fmt.Errorf("join group %s: %w", group, err)
		}
		c.logger.Debug("joined hub group", "group", group)
	}
	return nil
}

func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("hub connection lost", "error", err)
			}
			conn.Close()
			return
		}
		if f.Event == "" {
			continue
		}
		event := events.NewHubEvent(f.Event, f.Data)
		if err := c.bus.Publish(ctx, event); err != nil {
			c.logger.Error("failed to publish hub event", "event_type", f.Event, "error", err)
		}
	}
}

// Subscribe registers a handler for a named hub event and returns a disposer.
func (c *Channel) Subscribe(eventType string, handler events.Handler) func() {
	return c.bus.Subscribe(eventType, handler)
}

// Close stops the reconnect loop and tears down the connection.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		conn := c.conn
		c.conn = nil
		c.mu.Unlock()
		if conn != nil {
			deadline := time.Now().Add(time.Second)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			conn.Close()
		}
	})
	c.wg.Wait()
	return nil
}
