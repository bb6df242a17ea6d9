package detect_conflicts

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса на консультативную проверку конфликтов.
// Ничего не сохраняется: результат отражает занятость на момент проверки.
type Request struct {
	TenantID  int64
	StartTime time.Time
	EndTime   time.Time
	Services  []domain.ServiceRef

	// ExcludeBookingID исключает бронирование из учета занятости,
	// используется при проверке переноса существующего бронирования
	ExcludeBookingID *int64
}

// ConflictInfo обнаруженный конфликт
type ConflictInfo struct {
	Type                 string
	Severity             string
	ServiceID            *int64
	ConflictingBookingID *int64
	Description          string
	SuggestedSlots       []domain.SuggestedSlot
}

// CheckedService услуга, учтенная в проверке
type CheckedService struct {
	ID       int64
	Name     string
	Quantity int
}

// Response модель ответа с обнаруженными конфликтами
type Response struct {
	HasConflicts bool
	Conflicts    []ConflictInfo

	CheckedServices []CheckedService
	DroppedServices []string
}

func fromDomainConflicts(records []domain.ConflictRecord) []ConflictInfo {
	infos := make([]ConflictInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, ConflictInfo{
			Type:                 string(rec.Type),
			Severity:             string(rec.Severity),
			ServiceID:            rec.ServiceID,
			ConflictingBookingID: rec.ConflictingBookingID,
			Description:          rec.Description,
			SuggestedSlots:       rec.SuggestedSlots,
		})
	}
	return infos
}
