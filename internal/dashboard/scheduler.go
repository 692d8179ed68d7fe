package dashboard

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job - запланированная задача, которую можно остановить
type Job interface {
	Close() error
}

// Scheduler запускает fn с фиксированным интервалом до закрытия Job
type Scheduler interface {
	Every(interval time.Duration, fn func()) (Job, error)
}

// CronScheduler - рабочая реализация на robfig/cron
type CronScheduler struct {
	logger *logrus.Logger
}

func NewCronScheduler(logger *logrus.Logger) *CronScheduler {
	return &CronScheduler{logger: logger}
}

// Every планирует fn. Интервал округляется cron до целых секунд (минимум 1с).
// Если предыдущий запуск ещё не завершён, очередной тик пропускается.
func (s *CronScheduler) Every(interval time.Duration, fn func()) (Job, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be positive, got %s", interval)
	}
	log := cronLogger{entry: s.logger.WithField("component", "scheduler")}
	c := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	c.Schedule(cron.Every(interval), cron.FuncJob(fn))
	c.Start()
	return &cronJob{cron: c}, nil
}

type cronJob struct {
	cron *cron.Cron
}

// Close останавливает расписание и ждёт завершения уже запущенного тика
func (j *cronJob) Close() error {
	<-j.cron.Stop().Done()
	return nil
}

// cronLogger направляет внутренние сообщения cron в logrus
type cronLogger struct {
	entry *logrus.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(kvFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(kvFields(keysAndValues)).WithError(err).Error(msg)
}

func kvFields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
