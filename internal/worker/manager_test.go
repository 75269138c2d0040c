package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/worker"
)

// blockingWorker работает, пока его не остановят
type blockingWorker struct {
	*worker.BaseWorker
	started chan struct{}
}

func newBlockingWorker(name string) *blockingWorker {
	return &blockingWorker{
		BaseWorker: worker.NewBaseWorker(name, "group", zap.NewNop()),
		started:    make(chan struct{}),
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	close(w.started)
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stuckWorker игнорирует сигнал остановки
type stuckWorker struct {
	*worker.BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	m := worker.NewWorkerManager(0, zap.NewNop())
	assert.ErrorIs(t, m.Start(context.Background()), worker.ErrNoWorkers)
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(time.Second, zap.NewNop())
	a, b := newBlockingWorker("a"), newBlockingWorker("b")
	m.Register(a)
	m.Register(b)

	assert.Equal(t, []string{"a", "b"}, m.Names())
	require.NoError(t, m.Start(context.Background()))

	for _, w := range []*blockingWorker{a, b} {
		select {
		case <-w.started:
		case <-time.After(time.Second):
			t.Fatalf("worker %s did not start", w.Name())
		}
	}

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := worker.NewWorkerManager(50*time.Millisecond, zap.NewNop())
	w := &stuckWorker{
		BaseWorker: worker.NewBaseWorker("stuck", "group", zap.NewNop()),
		release:    make(chan struct{}),
	}
	defer close(w.release)

	m.Register(w)
	require.NoError(t, m.Start(context.Background()))

	assert.Error(t, m.Stop())
}

func TestBaseWorker(t *testing.T) {
	w := worker.NewBaseWorker("narrative", "narrative-workers", zap.NewNop())

	assert.Equal(t, "narrative", w.Name())
	assert.Equal(t, "narrative-workers", w.ConsumerGroup())
	assert.NotEmpty(t, w.ConsumerName())
	assert.False(t, w.IsStopped())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case <-w.StopChan():
	default:
		t.Fatal("stop channel should be closed")
	}
}
