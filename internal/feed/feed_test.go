package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestTickFrameDecode(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		payload   string
		wantOK    bool
		wantSym   string
		wantPrice float64
	}{
		{
			name:      "price update",
			payload:   `{"symbol": "NSE:SBIN-EQ", "ltp": 612.35}`,
			wantOK:    true,
			wantSym:   "NSE:SBIN-EQ",
			wantPrice: 612.35,
		},
		{
			name:    "missing ltp",
			payload: `{"symbol": "NSE:SBIN-EQ"}`,
			wantOK:  false,
		},
		{
			name:    "null ltp",
			payload: `{"symbol": "NSE:SBIN-EQ", "ltp": null}`,
			wantOK:  false,
		},
		{
			name:    "control frame",
			payload: `{"type": "ack"}`,
			wantOK:  false,
		},
		{
			name:      "zero ltp still decodes",
			payload:   `{"symbol": "NSE:SBIN-EQ", "ltp": 0}`,
			wantOK:    true,
			wantSym:   "NSE:SBIN-EQ",
			wantPrice: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var frame tickFrame
			if err := json.Unmarshal([]byte(tt.payload), &frame); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			tick, ok := frame.tick(now)
			if ok != tt.wantOK {
				t.Fatalf("tick() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if tick.Symbol != tt.wantSym {
				t.Errorf("Symbol = %q, want %q", tick.Symbol, tt.wantSym)
			}
			if tick.Price != tt.wantPrice {
				t.Errorf("Price = %v, want %v", tick.Price, tt.wantPrice)
			}
			if !tick.Timestamp.Equal(now) {
				t.Errorf("Timestamp = %v, want %v", tick.Timestamp, now)
			}
		})
	}
}

func TestSubscribe_DeliversTicks(t *testing.T) {
	upgrader := websocket.Upgrader{}
	subscribed := make(chan map[string]any, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "AB12345:secret" {
			t.Errorf("Authorization = %q, want AB12345:secret", got)
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var sub map[string]any
		if err := conn.ReadJSON(&sub); err != nil {
			return
		}
		subscribed <- sub

		frames := []map[string]any{
			{"symbol": "NSE:SBIN-EQ", "ltp": 612.35},
			{"type": "ack"},                // control frame, dropped
			{"symbol": "NSE:TCS-EQ"},       // no price, dropped
			{"symbol": "NSE:TCS-EQ", "ltp": 4101.5},
		}
		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				return
			}
		}

		// Hold the session open until the client hangs up.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client := NewClient(ClientConfig{
		URL:            wsURL,
		ClientID:       "AB12345",
		AccessToken:    "secret",
		ReconnectDelay: 50 * time.Millisecond,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ticks := client.Subscribe(ctx, []string{"NSE:SBIN-EQ", "NSE:TCS-EQ"})

	want := []struct {
		sym   string
		price float64
	}{
		{"NSE:SBIN-EQ", 612.35},
		{"NSE:TCS-EQ", 4101.5},
	}
	for i, w := range want {
		select {
		case tick, ok := <-ticks:
			if !ok {
				t.Fatalf("tick channel closed before tick %d", i)
			}
			if tick.Symbol != w.sym || tick.Price != w.price {
				t.Errorf("tick %d = %s@%v, want %s@%v", i, tick.Symbol, tick.Price, w.sym, w.price)
			}
			if tick.Timestamp.IsZero() {
				t.Errorf("tick %d has zero timestamp", i)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for tick %d", i)
		}
	}

	select {
	case sub := <-subscribed:
		if sub["type"] != "subscribe" {
			t.Errorf("subscribe frame type = %v", sub["type"])
		}
		if symbols, _ := sub["symbols"].([]any); len(symbols) != 2 {
			t.Errorf("subscribe frame carries %v, want 2 symbols", sub["symbols"])
		}
	case <-time.After(time.Second):
		t.Fatal("server never saw a subscribe frame")
	}

	cancel()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ticks:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("tick channel not closed after cancel")
		}
	}
}
