package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

type recordingRepo struct {
	ports.PaymentRepository

	mu       sync.Mutex
	attempts map[string][]string
	err      error
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{attempts: make(map[string][]string)}
}

func (r *recordingRepo) InsertAttempt(_ context.Context, a *domain.PaymentAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.attempts[a.ApplicationID] = append(r.attempts[a.ApplicationID], a.Reason)
	return nil
}

func (r *recordingRepo) FindInvoiceByID(_ context.Context, id string) (*domain.Invoice, error) {
	return &domain.Invoice{ID: id}, nil
}

func TestAttemptDispatcher_PreservesPerApplicationOrder(t *testing.T) {
	repo := newRecordingRepo()
	d := NewAttemptDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	const perApp = 50
	apps := []string{"app-a", "app-b", "app-c", "app-d"}
	var wg sync.WaitGroup
	for _, app := range apps {
		wg.Add(1)
		go func(app string) {
			defer wg.Done()
			for i := 0; i < perApp; i++ {
				err := d.InsertAttempt(context.Background(), &domain.PaymentAttempt{
					ApplicationID: app,
					Reason:        fmt.Sprintf("%03d", i),
				})
				assert.NoError(t, err)
			}
		}(app)
	}
	wg.Wait()
	d.Close()

	for _, app := range apps {
		got := repo.attempts[app]
		require.Len(t, got, perApp, app)
		for i, reason := range got {
			assert.Equal(t, fmt.Sprintf("%03d", i), reason, "%s out of order", app)
		}
	}
}

func TestAttemptDispatcher_WritesSynchronouslyAfterClose(t *testing.T) {
	repo := newRecordingRepo()
	d := NewAttemptDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	require.NoError(t, d.InsertAttempt(context.Background(), &domain.PaymentAttempt{ApplicationID: "late", Reason: "x"}))
	assert.Equal(t, []string{"x"}, repo.attempts["late"])

	repo.err = errors.New("down")
	assert.Error(t, d.InsertAttempt(context.Background(), &domain.PaymentAttempt{ApplicationID: "late"}))
}

func TestAttemptDispatcher_RespectsCallerContextWhenFull(t *testing.T) {
	repo := newRecordingRepo()
	d := NewAttemptDispatcher(1, repo, zerolog.Nop())
	// Workers are not started, so the buffer fills up.
	for i := 0; i < channelBuffer; i++ {
		require.NoError(t, d.InsertAttempt(context.Background(), &domain.PaymentAttempt{ApplicationID: "a"}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.InsertAttempt(ctx, &domain.PaymentAttempt{ApplicationID: "a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAttemptDispatcher_DelegatesOtherCalls(t *testing.T) {
	d := NewAttemptDispatcher(0, newRecordingRepo(), zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)

	inv, err := d.FindInvoiceByID(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewAttemptDispatcher(8, newRecordingRepo(), zerolog.Nop())
	for _, id := range []string{"a", "65f0c0ffee", "another-application"} {
		first := d.shardIndex(id)
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 8)
		assert.Equal(t, first, d.shardIndex(id))
	}
}
