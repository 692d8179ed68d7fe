package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/sirupsen/logrus"
)

var ErrAlreadyMounted = errors.New("feed view is already mounted")

// IncidentFetcher выполняет запрос ленты для текущего фильтра:
// с областью - запрос по области, без неё - постраничный список из limit элементов
type IncidentFetcher interface {
	FetchIncidents(ctx context.Context, filter models.IncidentFilter, limit int) ([]models.Incident, error)
}

// Snapshot - неизменяемая копия состояния представления
type Snapshot struct {
	Incidents []models.Incident
	Filter    models.IncidentFilter
	Loading   bool
	LastError error
	UpdatedAt time.Time
	// Generation - номер последнего запроса
	Generation uint64

	version uint64
}

// FeedViewConfig - параметры представления
type FeedViewConfig struct {
	PageSize        int
	RefreshInterval time.Duration
	// OnUpdate вызывается после каждого изменения состояния, в том числе из горутин запросов.
	// Вызовы последовательны, устаревшие снимки не доставляются. Менять состояние
	// FeedView из OnUpdate нельзя, читать через Snapshot можно.
	OnUpdate func(Snapshot)
}

// FeedView владеет фильтром и показанным набором инцидентов одного представления.
// Каждый запрос получает свой отменяемый контекст и номер поколения; применяется
// только ответ на последний запрос. После Unmount ни одного запроса не выполняется.
type FeedView struct {
	fetcher   IncidentFetcher
	scheduler Scheduler
	logger    *logrus.Logger
	cfg       FeedViewConfig

	mu         sync.Mutex
	filter     models.IncidentFilter
	incidents  []models.Incident
	loading    bool
	lastErr    error
	updatedAt  time.Time
	generation uint64
	mounted    bool
	ctx        context.Context
	cancel     context.CancelFunc
	reqCancel  context.CancelFunc
	job        Job
	wg         sync.WaitGroup
	version    uint64

	// scheduleMu сериализует перезапуск таймера и Unmount
	scheduleMu sync.Mutex

	notifyMu  sync.Mutex
	delivered uint64
}

func NewFeedView(fetcher IncidentFetcher, scheduler Scheduler, logger *logrus.Logger, cfg FeedViewConfig) *FeedView {
	return &FeedView{
		fetcher:   fetcher,
		scheduler: scheduler,
		logger:    logger,
		cfg:       cfg,
		incidents: []models.Incident{},
	}
}

// Mount запускает периодическое обновление и сразу выполняет первый запрос
func (v *FeedView) Mount(ctx context.Context) error {
	v.scheduleMu.Lock()
	defer v.scheduleMu.Unlock()

	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return ErrAlreadyMounted
	}

	job, err := v.scheduler.Every(v.cfg.RefreshInterval, v.tick)
	if err != nil {
		v.mu.Unlock()
		return fmt.Errorf("could not schedule feed refresh: %w", err)
	}

	v.ctx, v.cancel = context.WithCancel(ctx)
	v.job = job
	v.mounted = true
	snap := v.startFetchLocked("mount")
	v.mu.Unlock()

	v.logger.WithField("interval", v.cfg.RefreshInterval).Info("Feed view mounted")
	v.notify(snap)
	return nil
}

// Unmount отменяет таймер и все запросы и ждёт их завершения
func (v *FeedView) Unmount() {
	v.scheduleMu.Lock()
	defer v.scheduleMu.Unlock()

	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = false
	// Ответы запросов, начатых до этого момента, уже не применяются
	v.generation++
	v.loading = false
	v.reqCancel = nil
	v.cancel()
	job := v.job
	v.job = nil
	v.mu.Unlock()

	// Close ждёт текущий тик, а тик берёт mu, поэтому вне блокировки
	v.closeJob(job)
	v.wg.Wait()
	v.logger.Info("Feed view unmounted")
}

// SetBounds включает пространственный фильтр
func (v *FeedView) SetBounds(bounds models.GeoBounds) error {
	if err := bounds.Validate(); err != nil {
		return err
	}
	v.updateFilter("bounds", func(f models.IncidentFilter) models.IncidentFilter {
		return f.WithBounds(bounds)
	})
	return nil
}

// ClearBounds снимает пространственный фильтр, фильтры по тяжести и типу сохраняются
func (v *FeedView) ClearBounds() {
	v.updateFilter("clear_bounds", models.IncidentFilter.WithoutBounds)
}

func (v *FeedView) ToggleSeverity(severity models.Severity) {
	v.updateFilter("severity", func(f models.IncidentFilter) models.IncidentFilter {
		return f.ToggleSeverity(severity)
	})
}

func (v *FeedView) ToggleIncidentType(incidentType models.IncidentType) {
	v.updateFilter("incident_type", func(f models.IncidentFilter) models.IncidentFilter {
		return f.ToggleIncidentType(incidentType)
	})
}

// Refresh - ручное обновление
func (v *FeedView) Refresh() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	snap := v.startFetchLocked("manual")
	v.mu.Unlock()
	v.notify(snap)
	v.restartTimer()
}

func (v *FeedView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// updateFilter применяет изменение и перезапрашивает ленту, если фильтр действительно изменился
func (v *FeedView) updateFilter(reason string, change func(models.IncidentFilter) models.IncidentFilter) {
	v.mu.Lock()
	next := change(v.filter)
	if next.Equal(v.filter) {
		v.mu.Unlock()
		return
	}
	v.filter = next
	if !v.mounted {
		snap := v.changedLocked()
		v.mu.Unlock()
		v.notify(snap)
		return
	}
	snap := v.startFetchLocked(reason)
	v.mu.Unlock()
	v.notify(snap)
	v.restartTimer()
}

// restartTimer отменяет запланированный тик и отсчитывает интервал заново от внеочередного запроса.
// Вызывается только вне тика: Close ждёт завершения текущего тика.
func (v *FeedView) restartTimer() {
	v.scheduleMu.Lock()
	defer v.scheduleMu.Unlock()

	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	old := v.job
	v.job = nil
	v.mu.Unlock()

	v.closeJob(old)

	job, err := v.scheduler.Every(v.cfg.RefreshInterval, v.tick)
	if err != nil {
		v.logger.WithError(err).Error("Failed to reschedule feed refresh")
		return
	}
	v.mu.Lock()
	v.job = job
	v.mu.Unlock()
}

func (v *FeedView) closeJob(job Job) {
	if job == nil {
		return
	}
	if err := job.Close(); err != nil {
		v.logger.WithError(err).Warn("Failed to stop feed refresh job")
	}
}

func (v *FeedView) tick() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	snap := v.startFetchLocked("interval")
	v.mu.Unlock()
	v.notify(snap)
}

// startFetchLocked отменяет предыдущий запрос и запускает новый с очередным номером поколения
func (v *FeedView) startFetchLocked(reason string) Snapshot {
	if v.reqCancel != nil {
		v.reqCancel()
	}
	v.generation++
	gen := v.generation
	filter := v.filter

	ctx, cancel := context.WithCancel(v.ctx)
	v.reqCancel = cancel
	v.loading = true

	v.wg.Add(1)
	go v.fetch(ctx, cancel, gen, filter, reason)
	return v.changedLocked()
}

func (v *FeedView) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, filter models.IncidentFilter, reason string) {
	defer v.wg.Done()
	defer cancel()

	log := v.logger.WithFields(logrus.Fields{
		"component":     "feed",
		"generation":    gen,
		"reason":        reason,
		"severity":      filter.Severity,
		"incident_type": filter.IncidentType,
		"bounded":       filter.Bounds != nil,
	})
	log.Debug("Fetching incidents")

	incidents, err := v.fetcher.FetchIncidents(ctx, filter, v.cfg.PageSize)

	v.mu.Lock()
	if gen != v.generation {
		v.mu.Unlock()
		log.Debug("Dropping superseded feed response")
		return
	}
	v.loading = false
	v.reqCancel = nil
	if err != nil {
		// Показанный набор не трогаем, повторов нет: следующая попытка - по таймеру или при смене фильтра
		v.lastErr = err
		snap := v.changedLocked()
		v.mu.Unlock()
		log.WithError(err).Error("Failed to fetch incidents")
		v.notify(snap)
		return
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}
	v.incidents = incidents
	v.lastErr = nil
	v.updatedAt = time.Now()
	snap := v.changedLocked()
	v.mu.Unlock()

	log.WithField("count", len(incidents)).Debug("Feed updated")
	v.notify(snap)
}

// changedLocked отмечает изменение состояния и возвращает снимок для OnUpdate
func (v *FeedView) changedLocked() Snapshot {
	v.version++
	return v.snapshotLocked()
}

func (v *FeedView) snapshotLocked() Snapshot {
	incidents := make([]models.Incident, len(v.incidents))
	copy(incidents, v.incidents)
	return Snapshot{
		Incidents:  incidents,
		Filter:     v.filter,
		Loading:    v.loading,
		LastError:  v.lastErr,
		UpdatedAt:  v.updatedAt,
		Generation: v.generation,
		version:    v.version,
	}
}

func (v *FeedView) notify(snap Snapshot) {
	if v.cfg.OnUpdate == nil {
		return
	}
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()
	if snap.version <= v.delivered {
		return
	}
	v.delivered = snap.version
	v.cfg.OnUpdate(snap)
}
