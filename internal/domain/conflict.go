package domain

import "time"

// ConflictType вид обнаруженного конфликта
type ConflictType string

const (
	ConflictServiceOverlap    ConflictType = "service_overlap"
	ConflictTimeConflict      ConflictType = "time_conflict"
	ConflictAvailabilityLimit ConflictType = "availability_limit"
	ConflictBusinessHours     ConflictType = "business_hours"
)

// IsValidConflictType reports whether the value is a known conflict type
func IsValidConflictType(t ConflictType) bool {
	switch t {
	case ConflictServiceOverlap, ConflictTimeConflict, ConflictAvailabilityLimit, ConflictBusinessHours:
		return true
	default:
		return false
	}
}

// ConflictSeverity серьезность конфликта. Высокие уровни блокируют
// автоподтверждение, но не создание бронирования.
type ConflictSeverity string

const (
	SeverityLow      ConflictSeverity = "low"
	SeverityMedium   ConflictSeverity = "medium"
	SeverityHigh     ConflictSeverity = "high"
	SeverityCritical ConflictSeverity = "critical"
)

// BlocksAutoConfirm reports whether the severity prevents auto-confirmation
func (s ConflictSeverity) BlocksAutoConfirm() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// ResolutionStatus жизненный цикл конфликта в журнале
type ResolutionStatus string

const (
	ResolutionDetected  ResolutionStatus = "detected"
	ResolutionResolved  ResolutionStatus = "resolved"
	ResolutionIgnored   ResolutionStatus = "ignored"
	ResolutionEscalated ResolutionStatus = "escalated"
)

// IsValidResolutionStatus reports whether the value is a known resolution status
func IsValidResolutionStatus(s ResolutionStatus) bool {
	switch s {
	case ResolutionDetected, ResolutionResolved, ResolutionIgnored, ResolutionEscalated:
		return true
	default:
		return false
	}
}

// SuggestedSlot альтернативное окно той же длительности, предлагаемое
// вместо конфликтующего. Хранится в JSONB вместе с конфликтом.
type SuggestedSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictRecord одна запись журнала конфликтов. Создается при
// обнаружении, меняется только операцией разрешения.
type ConflictRecord struct {
	ID       int64
	TenantID int64

	Type     ConflictType
	Severity ConflictSeverity

	// Бронирование, при проверке которого найден конфликт.
	// Для чисто консультативной проверки (без создания) BookingID == nil.
	BookingID            *int64
	ConflictingBookingID *int64
	ServiceID            *int64

	Description    string
	SuggestedSlots []SuggestedSlot

	ResolutionStatus ResolutionStatus
	ResolvedAt       *time.Time
	ResolutionNotes  string
	ResolvedBy       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsResolved reports whether the conflict has been resolved
func (c *ConflictRecord) IsResolved() bool {
	return c.ResolutionStatus == ResolutionResolved
}

// ConflictsFilter фильтр для выборки записей журнала конфликтов
type ConflictsFilter struct {
	TenantID  int64             // Обязательный параметр
	Status    *ResolutionStatus // Фильтр по статусу разрешения (опционально)
	BookingID *int64            // Фильтр по бронированию (опционально)
	Type      *ConflictType     // Фильтр по виду конфликта (опционально)
	Limit     int               // 0 - без ограничения
}
