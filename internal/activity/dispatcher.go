package activity

import (
	"context"
	"sync"
	"time"

	"courtside/pkg/logger"

	"github.com/google/uuid"
)

// Dispatcher writes activity entries off the request path through a bounded
// channel and a single worker. When the buffer is full the entry is dropped
// and counted instead of blocking the caller.
type Dispatcher struct {
	repo Repository
	log  *logger.Logger

	queue chan *UserActivity
	done  chan struct{}
	wg    sync.WaitGroup

	mu      sync.Mutex
	stopped bool
	dropped int64
}

// NewDispatcher creates a dispatcher with the given buffer size.
func NewDispatcher(repo Repository, log *logger.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Dispatcher{
		repo:  repo,
		log:   log,
		queue: make(chan *UserActivity, buffer),
		done:  make(chan struct{}),
	}
}

// Start launches the worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop closes the queue and waits for the worker to drain it. The stopped
// flag is raised under the lock before done closes, so any Record that won
// the race has its entry in the queue before the final drain runs.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	close(d.done)
	d.wg.Wait()

	d.mu.Lock()
	dropped := d.dropped
	d.mu.Unlock()
	if dropped > 0 {
		d.log.Warn("activity entries dropped under pressure", "count", dropped)
	}
}

// Record enqueues an audit entry without blocking. Entries recorded after
// Stop are counted as dropped rather than lost silently.
func (d *Dispatcher) Record(userID uuid.UUID, action string, metadata map[string]interface{}) {
	entry := &UserActivity{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		d.dropped++
		return
	}
	select {
	case d.queue <- entry:
	default:
		d.dropped++
	}
}

// Dropped reports how many entries were discarded because the buffer was full.
func (d *Dispatcher) Dropped() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case entry := <-d.queue:
			d.persist(entry)
		case <-d.done:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case entry := <-d.queue:
					d.persist(entry)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) persist(entry *UserActivity) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.repo.Create(ctx, entry); err != nil {
		d.log.ErrorWithContext(ctx, "failed to persist activity entry", err, map[string]interface{}{
			"action":  entry.Action,
			"user_id": entry.UserID.String(),
		})
	}
}
