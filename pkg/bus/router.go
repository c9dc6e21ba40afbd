package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rewindlabs/rewindq/pkg/common"
	"github.com/rewindlabs/rewindq/pkg/rewind"
)

const defaultMaxRedeliveries = 3

// How long Exec sleeps when the queue is empty and there is no executor loop.
const idleWait = 250 * time.Microsecond

type event struct {
	id   EventId
	data interface{}
}

// Router pumps events from a rewind buffer to typed handlers on a single
// goroutine. The buffer is unsynchronized, so Post and the exec loop share a
// mutex around it. When a handler fails, the router rewinds the buffer and
// redelivers the event; redelivery stops after MaxRedeliveries attempts or
// when the slot has already been reclaimed by a later Post.
type Router struct {
	logger *zap.Logger

	mu    sync.Mutex
	queue *rewind.Buffer[event]
	done  chan error

	// Redelivery attempts for the event at the read cursor.
	attempts int

	MaxRedeliveries int

	SampleHandler SampleEventHandler
	EndHandler    EndEventHandler

	// Statistics
	runTime       time.Duration
	postCount     uint64
	postFails     uint64
	dispatchCount uint64
	dispatchFails uint64
	redeliveries  uint64
	drops         uint64
}

func NewRouter(logger *zap.Logger, eventCapacity int) *Router {
	return &Router{
		logger:          logger,
		queue:           rewind.New[event](eventCapacity),
		done:            make(chan error),
		MaxRedeliveries: defaultMaxRedeliveries,
	}
}

func (router *Router) Post(id EventId, data interface{}) error {
	router.mu.Lock()
	defer router.mu.Unlock()

	if !router.queue.Put(event{id, data}) {
		router.postFails++
		return errors.New("event capacity reached")
	}
	router.postCount++
	return nil
}

// Exec drains the queue until ctx is cancelled, idling briefly when empty.
func (router *Router) Exec(ctx context.Context) {
	router.resetStatistics()

	start := time.Now()
	defer func() {
		router.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			router.done <- ctx.Err()
			return
		default:
			if !router.step() {
				time.Sleep(idleWait)
			}
		}
	}
}

// ExecLoop drains the queue until ctx is cancelled or doOnceCb fails. The
// callback runs whenever the queue is empty, typically to feed it.
func (router *Router) ExecLoop(ctx context.Context, doOnceCb func(context.Context) error) {
	router.resetStatistics()

	start := time.Now()
	defer func() {
		router.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			router.done <- ctx.Err()
			return
		default:
			if !router.step() {
				if err := doOnceCb(ctx); err != nil {
					router.done <- err
					return
				}
			}
		}
	}
}

func (router *Router) Done() <-chan error {
	return router.done
}

// step dispatches at most one event. It reports false when the queue was
// empty.
func (router *Router) step() bool {
	router.mu.Lock()
	ev, ok := router.queue.Get()
	router.mu.Unlock()
	if !ok {
		return false
	}

	router.dispatchCount++
	err := router.dispatch(ev)
	if err == nil {
		router.attempts = 0
		return true
	}

	router.dispatchFails++
	if router.attempts < router.MaxRedeliveries && router.rewindQueue() {
		router.attempts++
		router.redeliveries++
		router.logger.Warn("dispatch failed, redelivering",
			zap.Error(err),
			zap.Int("attempt", router.attempts))
	} else {
		router.drops++
		router.attempts = 0
		router.logger.Warn("dispatch failed, event dropped",
			zap.Error(err))
	}
	return true
}

// rewindQueue un-consumes the last event so the next step redelivers it.
// Fails when the queue refilled to capacity in the meantime.
func (router *Router) rewindQueue() bool {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.queue.Rewind()
}

func (router *Router) dispatch(ev event) error {
	switch ev.id {
	case SampleEvent:
		sample, ok := ev.data.(common.Sample)
		if !ok {
			return errors.New("invalid type assertion for sample event")
		}
		if router.SampleHandler == nil {
			router.logger.Debug("sample handler is nil")
			return nil
		}
		return router.SampleHandler(sample)
	case EndEvent:
		if router.EndHandler == nil {
			router.logger.Debug("end handler is nil")
			return nil
		}
		return router.EndHandler()
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
}

func (router *Router) resetStatistics() {
	router.runTime = 0
	router.postCount = 0
	router.postFails = 0
	router.dispatchCount = 0
	router.dispatchFails = 0
	router.redeliveries = 0
	router.drops = 0
	router.attempts = 0
}
