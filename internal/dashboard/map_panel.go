package dashboard

import (
	"sync"

	"github.com/shenikar/disaster_watch/internal/mapview"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/sirupsen/logrus"
)

// MapPanel связывает инструмент выделения с лентой: завершённое выделение
// становится фильтром по области, маркеры строятся из текущего набора ленты
type MapPanel struct {
	mu     sync.Mutex
	tool   *SelectionTool
	feed   *FeedView
	logger *logrus.Logger
}

func NewMapPanel(feed *FeedView, logger *logrus.Logger) *MapPanel {
	return &MapPanel{
		tool:   NewSelectionTool(),
		feed:   feed,
		logger: logger,
	}
}

// ToggleSelection включает режим выделения или выключает его, если он уже включён
func (p *MapPanel) ToggleSelection() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tool.Captures() {
		p.tool.Disarm()
	} else {
		p.tool.Arm()
	}
	return p.tool.Mode()
}

func (p *MapPanel) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tool.Mode()
}

func (p *MapPanel) PointerDown(pos models.LatLng) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tool.PointerDown(pos)
}

func (p *MapPanel) PointerMove(pos models.LatLng) (models.GeoBounds, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tool.PointerMove(pos)
}

// Provisional - прямоугольник для подсветки во время перетаскивания
func (p *MapPanel) Provisional() (models.GeoBounds, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tool.Provisional()
}

// PointerUp завершает выделение и передаёт область в ленту
func (p *MapPanel) PointerUp(pos models.LatLng) (models.GeoBounds, bool) {
	p.mu.Lock()
	bounds, ok := p.tool.PointerUp(pos)
	p.mu.Unlock()
	if ok {
		p.apply(bounds)
	}
	return bounds, ok
}

func (p *MapPanel) PointerLeave() (models.GeoBounds, bool) {
	p.mu.Lock()
	bounds, ok := p.tool.PointerLeave()
	p.mu.Unlock()
	if ok {
		p.apply(bounds)
	}
	return bounds, ok
}

// ClearSelection снимает фильтр по области; режим выделения не включается
func (p *MapPanel) ClearSelection() {
	p.feed.ClearBounds()
}

// Markers строит маркеры из показанного набора, инциденты без координат пропускаются
func (p *MapPanel) Markers() []mapview.Marker {
	return mapview.Markers(p.feed.Snapshot().Incidents)
}

func (p *MapPanel) Center() models.LatLng {
	return mapview.Center(p.Markers())
}

func (p *MapPanel) apply(bounds models.GeoBounds) {
	if err := p.feed.SetBounds(bounds); err != nil {
		p.logger.WithError(err).Warn("Selection produced unusable bounds")
		return
	}
	p.logger.WithFields(logrus.Fields{
		"north": bounds.North,
		"south": bounds.South,
		"east":  bounds.East,
		"west":  bounds.West,
	}).Info("Area selected")
}
