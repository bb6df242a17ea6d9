package domain

import "time"

// TimeWindow полуинтервал [Start, End). Все пересечения интервалов в
// сервисе считаются строго через Overlaps, чтобы правило в одном месте.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow создает окно по началу и концу
func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start, End: end}
}

// IsValid reports whether the window is well-formed (End strictly after Start)
func (w TimeWindow) IsValid() bool {
	return w.End.After(w.Start)
}

// Overlaps reports whether two half-open windows intersect.
// Граничные случаи: окно [10:00, 12:00) НЕ пересекается с [12:00, 14:00),
// потому что конец интервала исключен.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Contains reports whether the instant t lies inside the window
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns the window length
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Hours returns the window length in hours
func (w TimeWindow) Hours() float64 {
	return w.Duration().Hours()
}

// Shift возвращает окно той же длительности, сдвинутое на d
func (w TimeWindow) Shift(d time.Duration) TimeWindow {
	return TimeWindow{Start: w.Start.Add(d), End: w.End.Add(d)}
}
