package progress

import "sync"

// Writer runs progress persistence off the request path. Callers enqueue
// and move on; tests call Flush to observe completion.
type Writer struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// NewWriter starts the single worker goroutine. One worker keeps remote
// writes for a session in the order they were enqueued.
func NewWriter() *Writer {
	w := &Writer{tasks: make(chan func(), 256)}
	go w.run()
	return w
}

func (w *Writer) run() {
	for task := range w.tasks {
		task()
		w.wg.Done()
	}
}

// Enqueue schedules a task. The buffer is large enough that learner-driven
// event rates never block here.
func (w *Writer) Enqueue(task func()) {
	w.wg.Add(1)
	w.tasks <- task
}

// Flush blocks until every enqueued task has run.
func (w *Writer) Flush() {
	w.wg.Wait()
}

// Close stops the worker after draining the queue.
func (w *Writer) Close() {
	w.once.Do(func() {
		w.wg.Wait()
		close(w.tasks)
	})
}
