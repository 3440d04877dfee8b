package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
)

// Task is one fire-and-forget store effect: a device timestamp touch,
// an audit append, or a cascade sub-delete. The submitting handler
// never observes its outcome.
type Task struct {
	ID   string
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher executes tasks on a fixed pool of workers, decoupled from
// the request/response cycle. Tasks run on a background context so a
// client disconnect never cancels them. Each task gets a bounded
// number of attempts; exhausted tasks are logged and dropped.
type Dispatcher struct {
	log        *logger.Logger
	tasks      chan Task
	wg         sync.WaitGroup
	workers    int
	attempts   int
	retryDelay time.Duration

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(log *logger.Logger, workers, queueSize, attempts int, retryDelay time.Duration) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if attempts < 1 {
		attempts = 1
	}
	return &Dispatcher{
		log:        log.WithComponent("dispatcher"),
		tasks:      make(chan Task, queueSize),
		workers:    workers,
		attempts:   attempts,
		retryDelay: retryDelay,
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for task := range d.tasks {
				d.process(task)
			}
		}()
	}
}

// Dispatch submits a task without blocking the caller. When the queue
// is full the task runs on its own goroutine instead of being dropped.
func (d *Dispatcher) Dispatch(name string, run func(ctx context.Context) error) {
	task := Task{ID: uuid.New().String(), Name: name, Run: run}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.log.WithField("task", name).Warn("dispatcher stopped, dropping task")
		return
	}

	select {
	case d.tasks <- task:
		d.mu.Unlock()
	default:
		d.mu.Unlock()
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.process(task)
		}()
	}
}

// Stop drains the queue and waits for in-flight tasks.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) process(task Task) {
	for attempt := 1; attempt <= d.attempts; attempt++ {
		err := task.Run(context.Background())
		if err == nil {
			return
		}

		log := d.log.WithField("task", task.Name).WithField("task_id", task.ID).WithField("attempt", attempt)
		if attempt == d.attempts {
			log.ErrorWithError(err, "task failed, giving up")
			return
		}
		log.WithError(err).Warn("task failed, retrying")
		time.Sleep(d.retryDelay)
	}
}
