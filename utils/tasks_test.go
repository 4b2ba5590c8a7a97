package utils

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskQueueRunsEnqueuedTasks(t *testing.T) {
	queue := StartTaskQueue(8)

	var ran int64
	for i := 0; i < 5; i++ {
		queue.Enqueue("count", func() error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}

	queue.Wait()
	assert.Equal(t, int64(5), atomic.LoadInt64(&ran))
}

func TestTaskQueueFailureDoesNotStopWorker(t *testing.T) {
	queue := StartTaskQueue(8)

	var ran int64
	queue.Enqueue("fails", func() error {
		return errors.New("boom")
	})
	queue.Enqueue("still runs", func() error {
		atomic.AddInt64(&ran, 1)
		return nil
	})

	queue.Wait()
	assert.Equal(t, int64(1), atomic.LoadInt64(&ran))
}

func TestTaskQueueMinimumBuffer(t *testing.T) {
	queue := StartTaskQueue(0)

	var ran int64
	queue.Enqueue("runs", func() error {
		atomic.AddInt64(&ran, 1)
		return nil
	})

	queue.Wait()
	assert.Equal(t, int64(1), atomic.LoadInt64(&ran))
}
