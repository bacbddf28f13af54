// Package analytics records executed searches off the request path. Events
// are best-effort: a full queue or a failed insert drops the event and the
// request never notices.
package analytics

import (
	"context"
	"log"
	"sync"
	"time"

	"catalitium/internal/repository"
)

const (
	queueSize     = 256
	insertTimeout = 3 * time.Second
)

type Emitter struct {
	events repository.EventRepository
	logger *log.Logger

	queue chan repository.SearchEvent
	done  chan struct{}
	once  sync.Once
}

func NewEmitter(events repository.EventRepository, logger *log.Logger) *Emitter {
	e := &Emitter{
		events: events,
		logger: logger,
		queue:  make(chan repository.SearchEvent, queueSize),
		done:   make(chan struct{}),
	}
	go e.run()
	return e
}

// EmitSearch enqueues one event without blocking. Events are dropped when
// the queue is full.
func (e *Emitter) EmitSearch(ev repository.SearchEvent) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	select {
	case e.queue <- ev:
	default:
		e.logger.Printf("[Analytics] queue full, dropping event title=%q", ev.NormTitle)
	}
}

// Close stops the worker after draining whatever is already queued.
func (e *Emitter) Close() {
	e.once.Do(func() {
		close(e.queue)
		<-e.done
	})
}

func (e *Emitter) run() {
	defer close(e.done)
	for ev := range e.queue {
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		if err := e.events.InsertSearchEvent(ctx, ev); err != nil {
			e.logger.Printf("[Analytics] event insert failed err=%v", err)
		}
		cancel()
	}
}
