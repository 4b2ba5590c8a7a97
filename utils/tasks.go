package utils

import (
	"hotelaudit/config"
	"log"
	"sync"
)

// DeferredTask is a unit of work scheduled after a response has been sent.
// At-most-once and best-effort: no retry, no durability across restarts,
// failures are logged and never reach the original caller.
type DeferredTask struct {
	Name string
	Run  func() error
}

// TaskQueue is the in-process queue that runs deferred persistence work off
// the request path.
type TaskQueue struct {
	tasks   chan DeferredTask
	pending sync.WaitGroup
}

// StartTaskQueue creates a queue with the given buffer size and starts its
// worker goroutine.
func StartTaskQueue(size int) *TaskQueue {
	if size <= 0 {
		size = 1
	}
	q := &TaskQueue{tasks: make(chan DeferredTask, size)}
	go q.worker()
	return q
}

func (q *TaskQueue) worker() {
	for task := range q.tasks {
		if err := task.Run(); err != nil {
			log.Printf("[AI-TASKS] task %q failed: %v", task.Name, err)
		}
		q.pending.Done()
	}
}

// Enqueue schedules a task without blocking the caller. When the buffer is
// full the task is dropped with a log line, keeping the response path free.
func (q *TaskQueue) Enqueue(name string, run func() error) {
	q.pending.Add(1)
	select {
	case q.tasks <- DeferredTask{Name: name, Run: run}:
	default:
		q.pending.Done()
		log.Printf("[AI-TASKS] queue full, dropping task %q", name)
	}
}

// Wait blocks until every queued task has finished. Used in tests.
func (q *TaskQueue) Wait() {
	q.pending.Wait()
}

// Tasks is the process-wide deferred queue, started once at boot.
var Tasks *TaskQueue

// InitTaskQueue starts the global queue sized from configuration.
func InitTaskQueue() {
	Tasks = StartTaskQueue(config.AppConfig.AITaskQueue)
	log.Printf("[AI-TASKS] deferred task queue started (buffer %d)", config.AppConfig.AITaskQueue)
}
