package infrastructure

import "sync"

// Task représente une tâche à exécuter
type Task func() error

// WorkerPool exécute des tâches en parallèle avec un nombre borné de
// workers. La première erreur rencontrée est conservée et retournée
// par Wait; les tâches suivantes sont tout de même exécutées.
type WorkerPool struct {
	tasks chan Task
	wg    sync.WaitGroup

	once sync.Once
	err  error
}

// NewWorkerPool crée un pool et démarre ses workers
func NewWorkerPool(workerCount int) *WorkerPool {
	wp := &WorkerPool{
		tasks: make(chan Task, workerCount*2),
	}
	for i := 0; i < workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.tasks {
		if err := task(); err != nil {
			wp.once.Do(func() { wp.err = err })
		}
	}
}

// Submit soumet une tâche au pool
func (wp *WorkerPool) Submit(task Task) {
	wp.tasks <- task
}

// Wait ferme le pool, attend la fin des tâches soumises et retourne
// la première erreur rencontrée
func (wp *WorkerPool) Wait() error {
	close(wp.tasks)
	wp.wg.Wait()
	return wp.err
}

// RunBatches découpe n éléments en lots de batchSize et soumet une
// tâche par lot. fn reçoit les bornes [start, end) du lot.
func RunBatches(n, batchSize, workers int, fn func(start, end int) error) error {
	if n == 0 {
		return nil
	}
	wp := NewWorkerPool(workers)
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		s, e := start, end
		wp.Submit(func() error { return fn(s, e) })
	}
	return wp.Wait()
}
