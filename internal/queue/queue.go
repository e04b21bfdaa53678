package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"seoulmarket/server/internal/dataset"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Handler consumes one load event.
type Handler func(dataset.LoadEvent) error

// EventQueue delivers dataset load events to its subscribers on a single
// background goroutine, so slow sinks never hold up a dataset load.
type EventQueue struct {
	items    chan dataset.LoadEvent
	done     chan struct{}
	maxSize  int
	closed   bool
	started  bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []Handler
}

func NewEventQueue(bufferSize int, logger *logrus.Logger) *EventQueue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &EventQueue{
		items:    make(chan dataset.LoadEvent, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]Handler, 0),
	}
}

// Push enqueues an event without blocking.
func (q *EventQueue) Push(event dataset.LoadEvent) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- event:
		q.logger.WithFields(logrus.Fields{"kind": event.Kind, "source": event.Source}).Debug("Queued load event")
		return nil
	default:
		return ErrQueueFull
	}
}

// ObserveLoad implements dataset.LoadObserver. Events that cannot be queued
// are logged and dropped.
func (q *EventQueue) ObserveLoad(event dataset.LoadEvent) {
	if err := q.Push(event); err != nil {
		q.logger.WithError(err).WithFields(logrus.Fields{"kind": event.Kind, "pending": q.Len()}).Warn("Dropped load event")
	}
}

func (q *EventQueue) Subscribe(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

func (q *EventQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.process()
}

func (q *EventQueue) process() {
	defer close(q.done)
	for event := range q.items {
		q.dispatch(event)
	}
}

func (q *EventQueue) dispatch(event dataset.LoadEvent) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			q.logger.WithError(err).WithField("kind", event.Kind).Error("Handler failed to process load event")
		}
	}
}

// Close stops accepting events and waits until queued ones are delivered.
func (q *EventQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	started := q.started
	q.mu.Unlock()

	if started {
		<-q.done
	}
	return nil
}

func (q *EventQueue) Len() int {
	return len(q.items)
}
