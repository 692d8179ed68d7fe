package models

// IncidentFilter - состояние фильтров представления. Пустое значение поля означает
// "без фильтра"; заданные поля объединяются по И.
type IncidentFilter struct {
	Bounds       *GeoBounds   `json:"bounds,omitempty"`
	Severity     Severity     `json:"severity,omitempty"`
	IncidentType IncidentType `json:"incident_type,omitempty"`
	// Location - подстрока названия места (только для списка инцидентов)
	Location string `json:"location,omitempty"`
}

// WithBounds возвращает копию фильтра с новой областью
func (f IncidentFilter) WithBounds(b GeoBounds) IncidentFilter {
	f.Bounds = &b
	return f
}

// WithoutBounds снимает пространственный фильтр, остальные сохраняются
func (f IncidentFilter) WithoutBounds() IncidentFilter {
	f.Bounds = nil
	return f
}

// ToggleSeverity работает как переключатель: повторный выбор того же значения снимает фильтр
func (f IncidentFilter) ToggleSeverity(s Severity) IncidentFilter {
	if f.Severity == s {
		f.Severity = ""
	} else {
		f.Severity = s
	}
	return f
}

func (f IncidentFilter) ToggleIncidentType(t IncidentType) IncidentFilter {
	if f.IncidentType == t {
		f.IncidentType = ""
	} else {
		f.IncidentType = t
	}
	return f
}

// Matches проверяет условия равенства по тяжести и типу (без учёта области)
func (f IncidentFilter) Matches(incident *Incident) bool {
	if f.Severity != "" && incident.Severity != f.Severity {
		return false
	}
	if f.IncidentType != "" && incident.IncidentType != f.IncidentType {
		return false
	}
	return true
}

// Equal сравнивает фильтры по значению, включая область
func (f IncidentFilter) Equal(other IncidentFilter) bool {
	if f.Severity != other.Severity || f.IncidentType != other.IncidentType || f.Location != other.Location {
		return false
	}
	if f.Bounds == nil || other.Bounds == nil {
		return f.Bounds == nil && other.Bounds == nil
	}
	return *f.Bounds == *other.Bounds
}
