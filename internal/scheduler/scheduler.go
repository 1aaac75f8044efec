package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PeriodicTask runs a function at a fixed interval on a cron scheduler.
// Runs never overlap and a panicking run does not stop later ones.
type PeriodicTask struct {
	name     string
	interval time.Duration
	task     func()
	logger   *zap.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// New creates a task; intervals below one second are rounded up to one second
func New(name string, interval time.Duration, task func(), logger *zap.Logger) *PeriodicTask {
	return &PeriodicTask{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
	}
}

// Start schedules the task. Calling it on a running task does nothing.
func (pt *PeriodicTask) Start() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if pt.running {
		return
	}

	cronLogger := cronLogger{logger: pt.logger.With(zap.String("task", pt.name)).Sugar()}
	pt.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	pt.cron.Schedule(cron.Every(pt.interval), cron.FuncJob(pt.task))
	pt.cron.Start()
	pt.running = true

	pt.logger.Info("Periodic task started",
		zap.String("task", pt.name),
		zap.Duration("interval", pt.interval))
}

// Stop unschedules the task and waits for a run in progress to finish
func (pt *PeriodicTask) Stop() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if !pt.running {
		return
	}

	<-pt.cron.Stop().Done()
	pt.cron = nil
	pt.running = false

	pt.logger.Info("Periodic task stopped", zap.String("task", pt.name))
}

// IsRunning returns true if the task is scheduled
func (pt *PeriodicTask) IsRunning() bool {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.running
}

// cronLogger routes cron's own messages to zap; routine scheduling chatter goes to debug
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
