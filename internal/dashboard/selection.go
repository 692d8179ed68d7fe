package dashboard

import (
	"github.com/shenikar/disaster_watch/internal/models"
)

// Mode - состояние инструмента выделения области
type Mode int

const (
	// ModeIdle - инструмент выключен, жесты карты не перехватываются
	ModeIdle Mode = iota
	// ModeSelecting - инструмент включён и ждёт начала перетаскивания
	ModeSelecting
	// ModeDragging - перетаскивание идёт, якорь зафиксирован
	ModeDragging
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSelecting:
		return "selecting"
	case ModeDragging:
		return "dragging"
	}
	return "unknown"
}

// SelectionTool превращает перетаскивание указателя по карте в GeoBounds.
// Каждое включение даёт не больше одного результата. Не потокобезопасен:
// вызовы сериализует владелец (MapPanel).
type SelectionTool struct {
	mode   Mode
	anchor models.LatLng
	last   models.LatLng
}

func NewSelectionTool() *SelectionTool {
	return &SelectionTool{}
}

func (t *SelectionTool) Mode() Mode {
	return t.mode
}

// Captures сообщает, перехватывает ли инструмент жесты (иначе карта панорамируется как обычно)
func (t *SelectionTool) Captures() bool {
	return t.mode != ModeIdle
}

// Arm включает режим выделения. Во время перетаскивания ничего не меняет.
func (t *SelectionTool) Arm() {
	if t.mode == ModeIdle {
		t.mode = ModeSelecting
	}
}

// Disarm выключает режим; незавершённое перетаскивание отбрасывается без результата
func (t *SelectionTool) Disarm() {
	t.mode = ModeIdle
	t.anchor = models.LatLng{}
	t.last = models.LatLng{}
}

// PointerDown фиксирует якорь. Вне режима выделения, при уже идущем перетаскивании
// или с некорректной координатой - no-op.
func (t *SelectionTool) PointerDown(p models.LatLng) bool {
	if t.mode != ModeSelecting || !p.Valid() {
		return false
	}
	t.mode = ModeDragging
	t.anchor = p
	t.last = p
	return true
}

// PointerMove обновляет последнюю координату и возвращает промежуточный прямоугольник
// для подсветки. Результатом он не считается.
func (t *SelectionTool) PointerMove(p models.LatLng) (models.GeoBounds, bool) {
	if t.mode != ModeDragging {
		return models.GeoBounds{}, false
	}
	if p.Valid() {
		t.last = p
	}
	return models.Envelope(t.anchor, t.last), true
}

// Provisional возвращает текущий промежуточный прямоугольник
func (t *SelectionTool) Provisional() (models.GeoBounds, bool) {
	if t.mode != ModeDragging {
		return models.GeoBounds{}, false
	}
	return models.Envelope(t.anchor, t.last), true
}

// PointerUp завершает перетаскивание где угодно, в том числе за пределами карты.
// Некорректная координата заменяется последней известной.
func (t *SelectionTool) PointerUp(p models.LatLng) (models.GeoBounds, bool) {
	if t.mode != ModeDragging {
		return models.GeoBounds{}, false
	}
	if p.Valid() {
		t.last = p
	}
	return t.finish(), true
}

// PointerLeave - указатель ушёл с карты во время перетаскивания: завершаем по последней координате
func (t *SelectionTool) PointerLeave() (models.GeoBounds, bool) {
	if t.mode != ModeDragging {
		return models.GeoBounds{}, false
	}
	return t.finish(), true
}

func (t *SelectionTool) finish() models.GeoBounds {
	bounds := models.Envelope(t.anchor, t.last)
	t.Disarm()
	return bounds
}
