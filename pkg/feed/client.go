package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rewindlabs/rewindq/pkg/common"
	"github.com/rewindlabs/rewindq/pkg/utility"
)

const feedComponentName = "feed.client"

// SubscriptionID identifies one subscriber of a feed client.
type SubscriptionID = uuid.UUID

// Client reads JSON sample frames from a websocket and fans them out to
// subscribers. Delivery never blocks the read pump: a subscriber whose
// channel is full misses the sample.
type Client struct {
	conn   *websocket.Conn
	logger *zap.Logger

	ctx       context.Context
	ctxCancel context.CancelFunc
	closeOnce sync.Once

	subscribersMu sync.RWMutex
	subscribers   map[SubscriptionID]chan common.Sample
}

func Dial(ctx context.Context, url string, logger *zap.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to dial feed %q: %w", url, err)
	}

	c := newClient(conn, logger)
	go c.read()
	return c, nil
}

func newClient(conn *websocket.Conn, logger *zap.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		conn:        conn,
		logger:      logger,
		ctx:         ctx,
		ctxCancel:   cancel,
		subscribers: make(map[SubscriptionID]chan common.Sample),
	}
}

// Subscribe registers a subscriber with the given channel buffer and returns
// its id with the receive channel. The channel closes on Unsubscribe or
// Close.
func (c *Client) Subscribe(buffer int) (SubscriptionID, <-chan common.Sample) {
	id := uuid.Must(uuid.NewV7())
	ch := make(chan common.Sample, buffer)

	c.subscribersMu.Lock()
	c.subscribers[id] = ch
	c.subscribersMu.Unlock()

	return id, ch
}

func (c *Client) Unsubscribe(id SubscriptionID) {
	c.subscribersMu.Lock()
	defer c.subscribersMu.Unlock()

	if ch, ok := c.subscribers[id]; ok {
		delete(c.subscribers, id)
		close(ch)
	}
}

// Done closes when the read pump stops, either through Close or a broken
// connection.
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.ctxCancel()
		_ = c.conn.Close()

		c.subscribersMu.Lock()
		for id, ch := range c.subscribers {
			delete(c.subscribers, id)
			close(ch)
		}
		c.subscribersMu.Unlock()
	})
}

func (c *Client) read() {
	defer c.Close()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, message, err := c.conn.ReadMessage()
			if err != nil {
				if c.ctx.Err() == nil {
					c.logger.Warn("cannot read data", zap.Error(err))
				}
				return
			}

			var sample common.Sample
			if err := json.Unmarshal(message, &sample); err != nil {
				c.logger.Warn("frame decode failed",
					zap.ByteString("raw", message),
					zap.Error(err))
				continue
			}

			sample.Source = feedComponentName
			sample.ExecutionId = utility.GetExecutionID()
			sample.TraceID = utility.CreateTraceID()

			c.publish(sample)
		}
	}
}

func (c *Client) publish(sample common.Sample) {
	c.subscribersMu.RLock()
	defer c.subscribersMu.RUnlock()

	for _, ch := range c.subscribers {
		select {
		case ch <- sample:
		default: // drop if blocked
		}
	}
}
