package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rewindlabs/rewindq/pkg/common"
)

// serveFrames runs a websocket server that writes each frame and keeps the
// connection open until the client disconnects.
func serveFrames(t *testing.T, frames []string) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer func() {
			_ = conn.Close()
		}()
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Hold the connection until the peer goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func recvSample(t *testing.T, ch <-chan common.Sample) common.Sample {
	t.Helper()
	select {
	case sample, ok := <-ch:
		if !ok {
			t.Fatal("subscription channel closed")
		}
		return sample
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for sample")
	}
	return common.Sample{}
}

func TestFeedClient_SubscribeReceives(t *testing.T) {
	url := serveFrames(t, []string{
		`{"symbol":"series","value":"1.25","volume":"3","ts":"2025-06-01T12:00:00Z"}`,
		`{"symbol":"series","value":"1.5","ts":"2025-06-01T12:00:01Z"}`,
	})

	c, err := Dial(context.Background(), url, zap.NewNop())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	_, ch := c.Subscribe(8)

	first := recvSample(t, ch)
	if first.Symbol != "series" {
		t.Errorf("symbol: got %q, want %q", first.Symbol, "series")
	}
	if first.Value.String() != "1.25" {
		t.Errorf("value: got %s, want 1.25", first.Value)
	}
	if first.Source != feedComponentName {
		t.Errorf("source: got %q, want %q", first.Source, feedComponentName)
	}
	if first.TraceID == 0 {
		t.Error("trace id not assigned")
	}

	second := recvSample(t, ch)
	if second.Value.String() != "1.5" {
		t.Errorf("value: got %s, want 1.5", second.Value)
	}
	if second.TraceID == first.TraceID {
		t.Error("trace ids should differ per sample")
	}
}

func TestFeedClient_BadFrameSkipped(t *testing.T) {
	url := serveFrames(t, []string{
		`not json`,
		`{"symbol":"series","value":"2","ts":"2025-06-01T12:00:00Z"}`,
	})

	c, err := Dial(context.Background(), url, zap.NewNop())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	_, ch := c.Subscribe(8)

	sample := recvSample(t, ch)
	if sample.Value.String() != "2" {
		t.Errorf("value: got %s, want 2", sample.Value)
	}
}

func TestFeedClient_Unsubscribe(t *testing.T) {
	url := serveFrames(t, nil)

	c, err := Dial(context.Background(), url, zap.NewNop())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	id, ch := c.Subscribe(1)
	c.Unsubscribe(id)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after unsubscribe")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}

	// Unsubscribing twice is a no-op.
	c.Unsubscribe(id)
}

func TestFeedClient_CloseEndsSubscriptions(t *testing.T) {
	url := serveFrames(t, nil)

	c, err := Dial(context.Background(), url, zap.NewNop())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}

	_, ch := c.Subscribe(1)
	c.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after close")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after close")
	}

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not signalled after close")
	}
}

func TestFeedClient_PublishDropsWhenBlocked(t *testing.T) {
	c := newClient(nil, zap.NewNop())
	defer c.ctxCancel()

	_, ch := c.Subscribe(1)

	c.publish(common.Sample{Symbol: "first"})
	c.publish(common.Sample{Symbol: "second"}) // buffer full, dropped

	sample := recvSample(t, ch)
	if sample.Symbol != "first" {
		t.Errorf("symbol: got %q, want %q", sample.Symbol, "first")
	}

	select {
	case sample := <-ch:
		t.Errorf("unexpected sample %q after drop", sample.Symbol)
	default:
	}
}
