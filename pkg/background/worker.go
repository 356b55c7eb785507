package background

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"agritrack/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ErrTaskDone возвращается задачей, когда ее больше не нужно запускать.
// Worker снимает такую задачу с расписания и не считает это ошибкой.
var ErrTaskDone = errors.New("background task done")

// Task определяет интерфейс для фоновых задач, которые могут выполняться периодически.
type Task interface {
	// TTL возвращает интервал между выполнениями задачи.
	TTL() time.Duration

	// Do выполняет логику задачи.
	Do(context.Context) error

	// Info возвращает читаемое описание задачи для логгирования и отладки.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Worker управляет выполнением набора фоновых задач.
type Worker struct {
	log     handlerLogger
	tasks   []Task
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
	running atomic.Int32
}

// New создает и запускает Worker для выполнения фоновых задач.
//
// Поведение функции:
//  1. Все задачи сначала выполняются синхронно для инициализации ("прогрев").
//     Любые ошибки инициализации возвращаются немедленно.
//  2. Если любая задача завершается с ошибкой или паникой на этапе инициализации,
//     New возвращает ошибку и Worker не создается. ErrTaskDone ошибкой не считается,
//     такая задача просто не попадает в периодический запуск.
//  3. Задачи выполняются в фоне, пока не будет отменен переданный контекст или не вызван Stop.
//
// Запуски одной задачи никогда не пересекаются: следующий тик ждет окончания предыдущего Do.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	runCtx, cancel := context.WithCancel(ctx)
	worker := &Worker{
		log:    log,
		tasks:  tasks,
		cancel: cancel,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	finished := make([]bool, len(tasks))
	initGroup, initCtx := errgroup.WithContext(runCtx)
	for i := 0; i < len(tasks); i++ {
		task := tasks[i]
		idx := i
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = fmt.Errorf("init panic: %v\n%s", r, stack)
					log.Error("Task panic during init",
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", string(stack)),
					)
				}
			}()
			log.Info("Initializing",
				logger.NewField("task", task.Info()),
			)
			err = task.Do(initCtx)
			if errors.Is(err, ErrTaskDone) {
				finished[idx] = true
				return nil
			}
			return err
		})
	}

	if err := initGroup.Wait(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for i := 0; i < len(tasks); i++ {
		if finished[i] {
			log.Info("Task finished during init",
				logger.NewField("task", tasks[i].Info()),
			)
			continue
		}
		task := tasks[i]
		worker.wg.Add(1)
		worker.running.Add(1)
		go func() {
			defer worker.wg.Done()
			defer worker.running.Add(-1)
			worker.runBackgroundTask(runCtx, task)
		}()
	}

	return worker, nil
}

// Stop останавливает все задачи и ждет завершения текущих запусков.
// Повторный вызов безопасен.
func (w *Worker) Stop() {
	w.once.Do(func() {
		w.cancel()
	})
	w.wg.Wait()
}

// Running сообщает, осталась ли хотя бы одна задача на расписании.
func (w *Worker) Running() bool {
	return w.running.Load() > 0
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, skipping periodic execution",
			logger.NewField("task", task.Info()),
			logger.NewField("TTL", ttl),
		)
		return
	}
	w.log.Info("Starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("TTL", ttl),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping task (context cancelled)",
				logger.NewField("task", task.Info()),
			)
			return
		case <-ticker.C:
			if done := w.executeTaskSafely(ctx, task); done {
				w.log.Info("Task finished",
					logger.NewField("task", task.Info()),
				)
				return
			}
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, task Task) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
		}
	}()

	err := task.Do(ctx)
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrTaskDone):
		return true
	case ctx.Err() != nil:
		// остановка во время запроса, не ошибка задачи
		return false
	default:
		w.log.Error("Background task failed",
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		)
		return false
	}
}
