package work

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Daskott/contactbook/server/models"
	"github.com/pkg/errors"
)

const DEFAULT_JOB_TIMEOUT = 10 * time.Minute

type workerPool struct {
	handlers    map[string]Handler
	workers     []*worker
	requeuer    *requeuer
	concurrency int
	started     bool
	mu          sync.Mutex
}

func newWorkerPool(concurrency int) *workerPool {
	wp := workerPool{
		handlers:    make(map[string]Handler),
		concurrency: concurrency,
		requeuer:    newRequeuer(STUCK_JOB_MINUTES),
	}

	for i := 0; i < concurrency; i++ {
		wp.workers = append(wp.workers, newWorker([]int64{0, 1, 5, 10, 30}, DEFAULT_JOB_TIMEOUT))
	}

	return &wp
}

// registerHandler binds a name to a job handler for all workers in pool
func (wp *workerPool) registerHandler(name string, handler Handler) error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.started {
		return fmt.Errorf("can't register handler %q on a running pool", name)
	}

	if _, ok := wp.handlers[name]; ok {
		return ErrDuplicateHandler
	}
	wp.handlers[name] = handler

	for _, worker := range wp.workers {
		err := worker.registerHandler(name, handler)
		if err != nil && !errors.Is(err, ErrDuplicateHandler) {
			return err
		}
	}
	return nil
}

// enqueue adds a job to the queue by creating a db record from 'job'
func (wp *workerPool) enqueue(job JobParams) error {
	if strings.TrimSpace(job.Name) == "" || strings.TrimSpace(job.Handler) == "" {
		return fmt.Errorf("both a name & handler is required for a job")
	}

	argsAsJson, err := json.Marshal(job.Args)
	if err != nil {
		return err
	}

	// Jobs that are enqueued or in-progress are unique by name
	return models.CreateUniqueJobByName(job.Name, job.Handler, string(argsAsJson))
}

// start starts all workers in pool i.e the workers can start processing jobs
func (wp *workerPool) start() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.started {
		return
	}
	wp.started = true

	for _, worker := range wp.workers {
		worker.start()
	}
	wp.requeuer.start()
}

// stop stops all workers in pool i.e jobs will stop being processed
func (wp *workerPool) stop() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.started {
		return
	}

	wg := sync.WaitGroup{}
	for _, w := range wp.workers {
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			w.stop()
		}(w)
	}
	wp.requeuer.stop()
	wg.Wait()
	wp.started = false
}
