// Package feed streams live price ticks from the market-data websocket.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tradepulse/momentum-scanner/internal/logger"
	"github.com/tradepulse/momentum-scanner/internal/models"
)

const (
	defaultBufferSize     = 256
	defaultReconnectDelay = 5 * time.Second
	defaultPingInterval   = 20 * time.Second
)

// ClientConfig controls connection behavior.
type ClientConfig struct {
	URL            string
	ClientID       string
	AccessToken    string
	BufferSize     int
	ReconnectDelay time.Duration
	PingInterval   time.Duration
}

// Client maintains a websocket session to the tick feed, resubscribing to the
// watchlist after every reconnect. Exactly one goroutine writes to the tick
// channel, so the consumer sees ticks sequentially.
type Client struct {
	cfg      ClientConfig
	onStatus func(connected bool)

	mu   sync.Mutex
	conn *websocket.Conn

	subsMu  sync.RWMutex
	symbols []string
}

// NewClient creates a feed client. onStatus, if non-nil, is invoked on every
// connection state change.
func NewClient(cfg ClientConfig, onStatus func(connected bool)) *Client {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	return &Client{cfg: cfg, onStatus: onStatus}
}

// Subscribe starts the connection loop for symbols and returns the tick
// channel. The channel is closed once ctx is cancelled.
func (c *Client) Subscribe(ctx context.Context, symbols []string) <-chan models.Tick {
	c.subsMu.Lock()
	c.symbols = symbols
	c.subsMu.Unlock()

	out := make(chan models.Tick, c.cfg.BufferSize)
	go c.maintainConnection(ctx, out)
	return out
}

func (c *Client) maintainConnection(ctx context.Context, out chan<- models.Tick) {
	defer close(out)
	for {
		if ctx.Err() != nil {
			return
		}

		if err := c.connectAndListen(ctx, out); err != nil {
			logger.Error("Feed connection lost: %v", err)
		}
		c.setStatus(false)

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.cfg.ReconnectDelay):
			logger.Info("Reconnecting to feed")
		}
	}
}

// tickFrame is one feed message. LTP is a pointer so frames without a price
// can be told apart from a zero price; both kinds are dropped before they
// reach the aggregator.
type tickFrame struct {
	Type   string   `json:"type,omitempty"`
	Symbol string   `json:"symbol"`
	LTP    *float64 `json:"ltp"`
}

// tick converts the frame to a Tick stamped at now, reporting false for
// control frames and frames without a price.
func (f tickFrame) tick(now time.Time) (models.Tick, bool) {
	if f.Symbol == "" || f.LTP == nil {
		return models.Tick{}, false
	}
	return models.Tick{Symbol: f.Symbol, Price: *f.LTP, Timestamp: now}, true
}

func (c *Client) connectAndListen(ctx context.Context, out chan<- models.Tick) error {
	header := http.Header{}
	header.Set("Authorization", c.cfg.ClientID+":"+c.cfg.AccessToken)

	logger.Info("Connecting to feed %s", c.cfg.URL)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.URL, header)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
			c.conn = nil
		}
		c.mu.Unlock()
	}()

	c.subsMu.RLock()
	symbols := c.symbols
	c.subsMu.RUnlock()
	if err := c.sendSubscribe(symbols); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	c.setStatus(true)
	logger.Info("Subscribed to %d symbols", len(symbols))

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.heartbeat(sessionCtx)
	// Unblock ReadMessage when the context is cancelled.
	go func() {
		<-sessionCtx.Done()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		var frame tickFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			logger.Debug("Skipping undecodable frame: %v", err)
			continue
		}

		tick, ok := frame.tick(time.Now())
		if !ok {
			continue
		}

		select {
		case out <- tick:
		default:
			// Consumer is behind; drop the stale tick.
		}
	}
}

func (c *Client) sendSubscribe(symbols []string) error {
	if len(symbols) == 0 {
		return nil
	}

	req := map[string]any{
		"type":    "subscribe",
		"symbols": symbols,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(req)
}

func (c *Client) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.conn != nil {
				if err := c.conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
					logger.Warn("Feed ping failed: %v", err)
				}
			}
			c.mu.Unlock()
		}
	}
}

func (c *Client) setStatus(connected bool) {
	if c.onStatus != nil {
		c.onStatus(connected)
	}
}
