package dashboard

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

type fetchCall struct {
	filter models.IncidentFilter
	limit  int
	ctx    context.Context
}

// fakeFetcher записывает вызовы и отвечает через handle
type fakeFetcher struct {
	mu     sync.Mutex
	calls  []fetchCall
	handle func(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, error)
}

func (f *fakeFetcher) FetchIncidents(ctx context.Context, filter models.IncidentFilter, limit int) ([]models.Incident, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{filter: filter, limit: limit, ctx: ctx})
	handle := f.handle
	f.mu.Unlock()
	if handle == nil {
		return []models.Incident{}, nil
	}
	return handle(ctx, filter)
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) call(i int) fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

// fakeScheduler не запускает таймер: тик вызывается из теста
type fakeScheduler struct {
	mu        sync.Mutex
	fn        func()
	interval  time.Duration
	scheduled int
	closed    int
}

func (s *fakeScheduler) Every(interval time.Duration, fn func()) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
	s.interval = interval
	s.scheduled++
	return &fakeJob{s: s}, nil
}

func (s *fakeScheduler) scheduledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

// fire вызывает тик даже после остановки задачи, как запоздавший таймер
func (s *fakeScheduler) fire() {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	fn()
}

func (s *fakeScheduler) closedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type fakeJob struct {
	s *fakeScheduler
}

func (j *fakeJob) Close() error {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	j.s.closed++
	return nil
}

type failingScheduler struct{}

func (failingScheduler) Every(time.Duration, func()) (Job, error) {
	return nil, errors.New("bad interval")
}

// newTestFeed создает ленту с тихим логгером; записи доступны через hook
func newTestFeed(t *testing.T, fetcher *fakeFetcher) (*FeedView, *fakeScheduler, *logrustest.Hook) {
	t.Helper()
	logger, hook := logrustest.NewNullLogger()
	sched := &fakeScheduler{}
	view := NewFeedView(fetcher, sched, logger, FeedViewConfig{PageSize: 20, RefreshInterval: 30 * time.Second})
	return view, sched, hook
}

func hasEntry(hook *logrustest.Hook, level logrus.Level, msg string) bool {
	for _, entry := range hook.AllEntries() {
		if entry.Level == level && entry.Message == msg {
			return true
		}
	}
	return false
}

func waitIdle(t *testing.T, view *FeedView) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool { return !view.Snapshot().Loading }, waitFor, time.Millisecond)
	return view.Snapshot()
}

func waitCalls(t *testing.T, fetcher *fakeFetcher, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return fetcher.count() >= n }, waitFor, time.Millisecond)
}

func incidents(ids ...string) []models.Incident {
	result := make([]models.Incident, 0, len(ids))
	for _, id := range ids {
		result = append(result, models.Incident{ID: id, Severity: models.SeverityModerate})
	}
	return result
}

func TestFeedView_MountFetchesUnscopedPage(t *testing.T) {
	// Подготовка
	fetcher := &fakeFetcher{handle: func(context.Context, models.IncidentFilter) ([]models.Incident, error) {
		return incidents("a", "b"), nil
	}}
	view, sched, _ := newTestFeed(t, fetcher)

	// Действие
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	snap := waitIdle(t, view)

	// Проверки
	assert.Equal(t, 30*time.Second, sched.interval)
	require.Equal(t, 1, fetcher.count())
	assert.Nil(t, fetcher.call(0).filter.Bounds)
	assert.Equal(t, 20, fetcher.call(0).limit)
	assert.Len(t, snap.Incidents, 2)
	assert.NoError(t, snap.LastError)
	assert.False(t, snap.UpdatedAt.IsZero())
}

func TestFeedView_MountTwice(t *testing.T) {
	view, _, _ := newTestFeed(t, &fakeFetcher{})
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()

	assert.ErrorIs(t, view.Mount(context.Background()), ErrAlreadyMounted)
}

func TestFeedView_MountSchedulerError(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	fetcher := &fakeFetcher{}
	view := NewFeedView(fetcher, failingScheduler{}, logger, FeedViewConfig{PageSize: 20, RefreshInterval: time.Second})

	err := view.Mount(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 0, fetcher.count())
	// Unmount без Mount безопасен
	view.Unmount()
}

func TestFeedView_SetBoundsAndClearKeepOtherFilters(t *testing.T) {
	// Подготовка
	fetcher := &fakeFetcher{}
	view, _, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	waitIdle(t, view)

	view.ToggleSeverity(models.SeverityCritical)
	waitIdle(t, view)
	bounds := models.GeoBounds{North: 41, South: 39, East: -73, West: -75}

	// Действие
	require.NoError(t, view.SetBounds(bounds))
	waitCalls(t, fetcher, 3)
	waitIdle(t, view)
	view.ClearBounds()
	waitCalls(t, fetcher, 4)
	snap := waitIdle(t, view)

	// Проверки
	scoped := fetcher.call(2).filter
	require.NotNil(t, scoped.Bounds)
	assert.Equal(t, bounds, *scoped.Bounds)
	assert.Equal(t, models.SeverityCritical, scoped.Severity)

	cleared := fetcher.call(3).filter
	assert.Nil(t, cleared.Bounds)
	assert.Equal(t, models.SeverityCritical, cleared.Severity)
	assert.Equal(t, cleared, snap.Filter)
}

func TestFeedView_SetBoundsRejectsInvalid(t *testing.T) {
	fetcher := &fakeFetcher{}
	view, _, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	waitIdle(t, view)

	err := view.SetBounds(models.GeoBounds{North: 10, South: 20, East: 5, West: 0})

	assert.Error(t, err)
	assert.Equal(t, 1, fetcher.count())
	assert.Nil(t, view.Snapshot().Filter.Bounds)
}

func TestFeedView_ToggleTwiceRestoresFilter(t *testing.T) {
	fetcher := &fakeFetcher{}
	view, _, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	waitIdle(t, view)

	view.ToggleIncidentType(models.IncidentTypeFlood)
	view.ToggleIncidentType(models.IncidentTypeFlood)
	waitCalls(t, fetcher, 3)
	snap := waitIdle(t, view)

	assert.Equal(t, models.IncidentFilter{}, snap.Filter)
	// Запросы выполняются в отдельных горутинах, порядок записи вызовов не гарантирован
	unscoped, flood := 0, 0
	for i := 0; i < fetcher.count(); i++ {
		switch fetcher.call(i).filter {
		case models.IncidentFilter{}:
			unscoped++
		case models.IncidentFilter{IncidentType: models.IncidentTypeFlood}:
			flood++
		}
	}
	assert.Equal(t, 2, unscoped)
	assert.Equal(t, 1, flood)
}

func TestFeedView_ClearWithoutBoundsIsNoOp(t *testing.T) {
	fetcher := &fakeFetcher{}
	view, _, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	waitIdle(t, view)

	view.ClearBounds()

	assert.Equal(t, 1, fetcher.count())
}

func TestFeedView_ErrorKeepsDisplayedIncidents(t *testing.T) {
	// Подготовка
	var mu sync.Mutex
	fail := false
	fetcher := &fakeFetcher{handle: func(context.Context, models.IncidentFilter) ([]models.Incident, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, errors.New("connection refused")
		}
		return incidents("a", "b"), nil
	}}
	view, sched, hook := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	before := waitIdle(t, view)

	mu.Lock()
	fail = true
	mu.Unlock()

	// Действие
	sched.fire()
	waitCalls(t, fetcher, 2)
	require.Eventually(t, func() bool { return view.Snapshot().LastError != nil }, waitFor, time.Millisecond)
	after := view.Snapshot()

	// Проверки
	assert.Equal(t, before.Incidents, after.Incidents)
	assert.False(t, after.Loading)
	assert.EqualError(t, after.LastError, "connection refused")
	assert.Eventually(t, func() bool {
		return hasEntry(hook, logrus.ErrorLevel, "Failed to fetch incidents")
	}, waitFor, time.Millisecond)

	// Успешный запрос сбрасывает ошибку
	mu.Lock()
	fail = false
	mu.Unlock()
	sched.fire()
	require.Eventually(t, func() bool { return view.Snapshot().LastError == nil }, waitFor, time.Millisecond)
}

func TestFeedView_TickRefetchesCurrentFilter(t *testing.T) {
	fetcher := &fakeFetcher{}
	view, sched, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	waitIdle(t, view)
	bounds := models.GeoBounds{North: 1, South: 0, East: 1, West: 0}
	require.NoError(t, view.SetBounds(bounds))
	waitIdle(t, view)

	sched.fire()
	waitCalls(t, fetcher, 3)
	waitIdle(t, view)

	require.NotNil(t, fetcher.call(2).filter.Bounds)
	assert.Equal(t, bounds, *fetcher.call(2).filter.Bounds)
}

func TestFeedView_StaleResponseIsDropped(t *testing.T) {
	// Подготовка: первый запрос висит, пока его не отпустят
	release := make(chan struct{})
	fetcher := &fakeFetcher{handle: func(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, error) {
		if filter.Severity == "" {
			<-release
			return incidents("stale"), nil
		}
		return incidents("fresh"), nil
	}}
	view, _, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	waitCalls(t, fetcher, 1)
	assert.True(t, view.Snapshot().Loading)

	// Действие
	view.ToggleSeverity(models.SeverityCritical)
	waitCalls(t, fetcher, 2)
	require.Eventually(t, func() bool {
		snap := view.Snapshot()
		return !snap.Loading && len(snap.Incidents) == 1 && snap.Incidents[0].ID == "fresh"
	}, waitFor, time.Millisecond)
	close(release)
	// Unmount ждёт завершения всех запросов, в том числе устаревшего
	view.Unmount()

	// Проверки
	snap := view.Snapshot()
	require.Len(t, snap.Incidents, 1)
	assert.Equal(t, "fresh", snap.Incidents[0].ID)
	assert.ErrorIs(t, fetcher.call(0).ctx.Err(), context.Canceled)
}

func TestFeedView_UnmountCancelsInFlightRequest(t *testing.T) {
	// Подготовка
	fetcher := &fakeFetcher{handle: func(ctx context.Context, _ models.IncidentFilter) ([]models.Incident, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	view, sched, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	waitCalls(t, fetcher, 1)

	// Действие
	done := make(chan struct{})
	go func() {
		view.Unmount()
		close(done)
	}()

	// Проверки
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Unmount did not return")
	}
	snap := view.Snapshot()
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.LastError)
	assert.Empty(t, snap.Incidents)
	assert.Equal(t, 1, sched.closedCount())
}

func TestFeedView_NoFetchAfterUnmount(t *testing.T) {
	// Подготовка
	fetcher := &fakeFetcher{}
	view, sched, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	waitIdle(t, view)
	view.Unmount()

	// Действие
	sched.fire()
	view.Refresh()
	view.ToggleSeverity(models.SeverityLow)
	require.NoError(t, view.SetBounds(models.GeoBounds{North: 1, South: 0, East: 1, West: 0}))
	view.Unmount()

	// Проверки
	assert.Equal(t, 1, fetcher.count())
	assert.Equal(t, 1, sched.closedCount())
	// Фильтр меняется, но запроса нет
	snap := view.Snapshot()
	assert.Equal(t, models.SeverityLow, snap.Filter.Severity)
	assert.NotNil(t, snap.Filter.Bounds)
}

func TestFeedView_ParentContextCancelsRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &fakeFetcher{handle: func(ctx context.Context, _ models.IncidentFilter) ([]models.Incident, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	view, _, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(ctx))
	waitCalls(t, fetcher, 1)

	cancel()

	require.Eventually(t, func() bool { return view.Snapshot().LastError != nil }, waitFor, time.Millisecond)
	assert.ErrorIs(t, view.Snapshot().LastError, context.Canceled)
	view.Unmount()
}

func TestFeedView_OnUpdateReceivesOrderedSnapshots(t *testing.T) {
	// Подготовка
	var mu sync.Mutex
	var versions []uint64
	var last Snapshot
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	fetcher := &fakeFetcher{handle: func(context.Context, models.IncidentFilter) ([]models.Incident, error) {
		return incidents("a"), nil
	}}
	view := NewFeedView(fetcher, &fakeScheduler{}, logger, FeedViewConfig{
		PageSize:        10,
		RefreshInterval: time.Second,
		OnUpdate: func(s Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			versions = append(versions, s.version)
			last = s
		},
	})

	// Действие
	require.NoError(t, view.Mount(context.Background()))
	waitIdle(t, view)
	view.Unmount()

	// Проверки
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, versions)
	for i := 1; i < len(versions); i++ {
		assert.Greater(t, versions[i], versions[i-1])
	}
	assert.False(t, last.Loading)
	assert.Len(t, last.Incidents, 1)
}

func TestFeedView_SnapshotIsACopy(t *testing.T) {
	fetcher := &fakeFetcher{handle: func(context.Context, models.IncidentFilter) ([]models.Incident, error) {
		return incidents("a"), nil
	}}
	view, _, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	snap := waitIdle(t, view)

	snap.Incidents[0].ID = "changed"

	assert.Equal(t, "a", view.Snapshot().Incidents[0].ID)
}

func TestFeedView_FilterChangeRestartsRefreshTimer(t *testing.T) {
	// Подготовка
	fetcher := &fakeFetcher{}
	view, sched, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Unmount()
	waitIdle(t, view)
	require.Equal(t, 1, sched.scheduledCount())

	// Действие
	view.ToggleSeverity(models.SeverityCritical)

	// Проверки: прежний таймер остановлен, новый отсчитывает интервал с начала
	assert.Equal(t, 2, sched.scheduledCount())
	assert.Equal(t, 1, sched.closedCount())
	assert.Equal(t, 30*time.Second, sched.interval)

	view.Refresh()
	assert.Equal(t, 3, sched.scheduledCount())
	assert.Equal(t, 2, sched.closedCount())

	// Фильтр не изменился - таймер не трогаем
	view.ClearBounds()
	assert.Equal(t, 3, sched.scheduledCount())

	// Тик нового таймера запрашивает ленту с текущим фильтром
	waitIdle(t, view)
	before := fetcher.count()
	sched.fire()
	waitCalls(t, fetcher, before+1)
	waitIdle(t, view)
	for i := 1; i < fetcher.count(); i++ {
		assert.Equal(t, models.SeverityCritical, fetcher.call(i).filter.Severity)
	}
}

func TestFeedView_NoTimerRestartAfterUnmount(t *testing.T) {
	fetcher := &fakeFetcher{}
	view, sched, _ := newTestFeed(t, fetcher)
	require.NoError(t, view.Mount(context.Background()))
	waitIdle(t, view)
	view.Unmount()

	view.ToggleSeverity(models.SeverityLow)
	view.Refresh()

	assert.Equal(t, 1, sched.scheduledCount())
	assert.Equal(t, 1, sched.closedCount())
}
