package renderer

import (
	"context"
	"sync"
)

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Band   Band
	TaskID int // Band index; also selects the band's sampler
}

// BandResult contains the result from rendering a band
type BandResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel band rendering into a shared framebuffer
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual band rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	framebuffer *Framebuffer
	progress    *progressReporter
	taskQueue   chan BandTask
	resultQueue chan BandResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(rt *Raytracer, fb *Framebuffer, numWorkers int, progress *progressReporter) *WorkerPool {
	numWorkers = max(1, numWorkers)

	// One band per worker, so queues sized to the worker count never block
	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, numWorkers),
		resultQueue: make(chan BandResult, numWorkers),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   rt,
			framebuffer: fb,
			progress:    progress,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop closes the task queue and waits for every worker to exit
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		sampler := w.raytracer.newSampler(task.TaskID)
		stats, err := w.raytracer.RenderBand(ctx, w.framebuffer, task.Band, sampler, w.progress)

		w.resultQueue <- BandResult{
			TaskID: task.TaskID,
			Stats:  stats,
			Error:  err,
		}
	}
}
