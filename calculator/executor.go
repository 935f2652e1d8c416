package calculator

import (
	"time"
)

// 基于行的任务分配
// 每次扫描时 master 把 [first, last) 行拆成若干个任务，worker 完成后回报，
// 全部完成后 dispatchTask 才返回，相当于一次扫描结束时的屏障
type executor struct {
	workers      int
	dispatchChan chan task
	doneSoFar    chan struct{}
	f            func(t task)
}

type task struct {
	start int
	end   int
}

func newExecutor(workers int, f func(t task)) *executor {
	if workers < 1 {
		workers = 1
	}
	return &executor{
		workers: workers,
		f:       f,
	}
}

func (e *executor) run() {
	// 任务数不超过 workers*2，两个通道都不会阻塞 worker
	e.dispatchChan = make(chan task, e.workers*2)
	e.doneSoFar = make(chan struct{}, e.workers*2)
	for i := 0; i < e.workers; i++ {
		go func() {
			for t := range e.dispatchChan {
				e.f(t)
				e.doneSoFar <- struct{}{}
			}
		}()
	}
}

func (e *executor) stop() {
	close(e.dispatchChan)
}

func (e *executor) dispatchTask(first, last int) time.Duration {
	start := time.Now()
	tasks := splitTask(first, last, e.workers*2)
	for _, t := range tasks {
		e.dispatchChan <- t
	}
	for range tasks {
		<-e.doneSoFar
	}
	return time.Since(start)
}

// splitTask 把 [first, last) 尽量均匀地分成不超过 n 块
func splitTask(first, last, n int) []task {
	total := last - first
	if total <= 0 {
		return nil
	}
	if n > total {
		n = total
	}
	taskLen, remainder := total/n, total%n
	tasks := make([]task, 0, n)
	start := first
	for i := 0; i < n; i++ {
		end := start + taskLen
		if i < remainder {
			end++
		}
		tasks = append(tasks, task{start: start, end: end})
		start = end
	}
	return tasks
}
