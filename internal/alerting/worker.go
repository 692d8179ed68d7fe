package alerting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_watch/internal/config"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/sirupsen/logrus"
)

// AlertGenerator создаёт оповещение по запросу из очереди
type AlertGenerator interface {
	GenerateForIncident(ctx context.Context, req AlertRequest) (*models.Alert, error)
}

// WorkerStatus - состояние обработчика очереди для /monitoring/status
type WorkerStatus struct {
	Status         string     `json:"status"`
	QueueLength    int64      `json:"queue_length"`
	LastProcessed  *time.Time `json:"last_processed,omitempty"`
	TotalProcessed int64      `json:"total_processed"`
}

// AlertWorker - обработчик очереди запросов на оповещения
type AlertWorker struct {
	redisClient *redis.Client
	generator   AlertGenerator
	logger      *logrus.Logger
	cfg         *config.Config

	running       atomic.Bool
	processed     atomic.Int64
	lastProcessed atomic.Int64 // unix nano, 0 - ещё не было
}

// NewAlertWorker создает новый AlertWorker
func NewAlertWorker(redisClient *redis.Client, generator AlertGenerator, logger *logrus.Logger, cfg *config.Config) *AlertWorker {
	return &AlertWorker{
		redisClient: redisClient,
		generator:   generator,
		logger:      logger,
		cfg:         cfg,
	}
}

// Start запускает горутину для обработки очереди
func (w *AlertWorker) Start(ctx context.Context) {
	w.logger.Info("Starting alert worker...")
	w.running.Store(true)
	go func() {
		defer w.running.Store(false)
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping alert worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части списка, 0 - ждать бесконечно
				result, err := w.redisClient.BRPop(ctx, 0, alertQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop alert request from Redis")
					w.sleep(ctx, w.cfg.AlertRetryDelay)
					continue
				}

				// result[0] - ключ, result[1] - значение
				w.processPayload(ctx, result[1])
			}
		}
	}()
}

// processPayload разбирает и обрабатывает одно сообщение очереди.
// Ошибки только логируются: повторной постановки в очередь нет.
func (w *AlertWorker) processPayload(ctx context.Context, payload string) {
	var req AlertRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal alert request from Redis")
		return
	}

	log := w.logger.WithFields(logrus.Fields{
		"incident_id":   req.IncidentID,
		"severity":      req.Severity,
		"urgency_score": req.UrgencyScore,
	})
	log.Debug("Processing alert request...")
	defer w.markProcessed()

	if req.IncidentID == "" {
		log.Warn("Alert request without incident id, skipping")
		return
	}

	alert, err := w.generator.GenerateForIncident(ctx, req)
	if err != nil {
		log.WithError(err).Error("Failed to generate alert for incident")
		return
	}
	log.WithField("alert_id", alert.ID).Info("Alert generated for incident")
}

func (w *AlertWorker) markProcessed() {
	w.processed.Add(1)
	w.lastProcessed.Store(time.Now().UTC().UnixNano())
}

// Status возвращает состояние воркера и длину очереди
func (w *AlertWorker) Status(ctx context.Context) (WorkerStatus, error) {
	status := WorkerStatus{
		Status:         "inactive",
		TotalProcessed: w.processed.Load(),
	}
	if w.running.Load() {
		status.Status = "active"
	}
	if nanos := w.lastProcessed.Load(); nanos != 0 {
		last := time.Unix(0, nanos).UTC()
		status.LastProcessed = &last
	}
	if w.redisClient != nil {
		length, err := w.redisClient.LLen(ctx, alertQueueKey).Result()
		if err != nil {
			return status, fmt.Errorf("failed to read alert queue length: %w", err)
		}
		status.QueueLength = length
	}
	return status, nil
}

func (w *AlertWorker) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
