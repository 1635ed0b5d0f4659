package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// AttemptDispatcher takes payment audit writes off the request path. It wraps
// a PaymentRepository: InsertAttempt is queued to a fixed set of workers
// sharded on the application id, so the attempts of one application are
// stored in the order they happened. All other calls go straight through.
type AttemptDispatcher struct {
	ports.PaymentRepository

	workers []chan *domain.PaymentAttempt
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAttemptDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAttemptDispatcher(numWorkers int, repo ports.PaymentRepository, log zerolog.Logger) *AttemptDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AttemptDispatcher{
		PaymentRepository: repo,
		workers:           make([]chan *domain.PaymentAttempt, numWorkers),
		log:               log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.PaymentAttempt, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop early when ctx is
// cancelled; use Close to drain pending writes instead.
func (d *AttemptDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// InsertAttempt queues the attempt for its application's worker. It blocks
// while that worker's buffer is full, until ctx is done. After Close the
// write happens synchronously.
func (d *AttemptDispatcher) InsertAttempt(ctx context.Context, attempt *domain.PaymentAttempt) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return d.PaymentRepository.InsertAttempt(ctx, attempt)
	}

	select {
	case d.workers[d.shardIndex(attempt.ApplicationID)] <- attempt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting queued writes and waits for the workers to flush
// what is already queued.
func (d *AttemptDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps an application id deterministically to a worker index.
func (d *AttemptDispatcher) shardIndex(applicationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(applicationID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AttemptDispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.PaymentAttempt) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case attempt, ok := <-ch:
			if !ok {
				return
			}
			d.write(ctx, id, attempt)
		}
	}
}

func (d *AttemptDispatcher) write(ctx context.Context, id int, attempt *domain.PaymentAttempt) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := d.PaymentRepository.InsertAttempt(ctx, attempt); err != nil {
		d.log.Error().Err(err).
			Str("application_id", attempt.ApplicationID).
			Int("worker_id", id).
			Msg("payment attempt audit failed")
	}
}
