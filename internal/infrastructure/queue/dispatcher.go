package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder persists one activity event.
type Recorder interface {
	Record(ctx context.Context, e domain.TaskEvent) error
}

// Dispatcher routes task activity events to a fixed set of workers using
// consistent hashing on the task id, guaranteeing per-task event ordering.
type Dispatcher struct {
	workers  []chan domain.TaskEvent
	recorder Recorder
	log      zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder Recorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.TaskEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TaskEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. ctx is passed to the recorder;
// workers exit once Stop has closed their channels and they are drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its task. The call
// blocks only when that worker's buffer is full. Events published after Stop
// are dropped.
func (d *Dispatcher) Publish(e domain.TaskEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.log.Warn().Str("task_id", e.TaskID).Msg("dispatcher stopped; activity event dropped")
		return
	}

	idx := d.shardIndex(e.TaskID)
	d.workers[idx] <- e
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// Stop closes the worker channels and waits for pending events to be recorded.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a task id deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TaskEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for e := range ch {
		metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		if err := d.recorder.Record(ctx, e); err != nil {
			d.log.Error().Err(err).
				Str("task_id", e.TaskID).
				Int("worker_id", id).
				Msg("activity recording failed")
		}
	}
}
