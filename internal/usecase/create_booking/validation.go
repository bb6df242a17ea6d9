package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if req.Customer.IsEmpty() {
		return fmt.Errorf("%w: customer data is required", ErrInvalidInput)
	}

	if req.Customer.ID != nil && *req.Customer.ID <= 0 {
		return fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	}

	if len(req.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	for i, ref := range req.Services {
		if ref.ID == nil && (ref.Name == nil || *ref.Name == "") {
			return fmt.Errorf("%w: service[%d] must have id or name", ErrInvalidInput, i)
		}
		if ref.ID != nil && *ref.ID <= 0 {
			return fmt.Errorf("%w: service[%d] id must be positive", ErrInvalidInput, i)
		}
		if ref.Quantity < 0 {
			return fmt.Errorf("%w: service[%d] quantity must not be negative", ErrInvalidInput, i)
		}
	}

	if req.Source != "" && !domain.IsValidBookingSource(req.Source) {
		return fmt.Errorf("%w: unknown booking source %q", ErrInvalidInput, req.Source)
	}

	if req.AIConfidence != nil && (*req.AIConfidence < 0 || *req.AIConfidence > 1) {
		return fmt.Errorf("%w: aiConfidence must be between 0 and 1", ErrInvalidInput)
	}

	return nil
}

// serviceRefLabel возвращает печатное представление ссылки на услугу
// для списка отброшенных позиций
func serviceRefLabel(ref domain.ServiceRef) string {
	if ref.Name != nil && *ref.Name != "" {
		return *ref.Name
	}
	if ref.ID != nil {
		return fmt.Sprintf("#%d", *ref.ID)
	}
	return "unknown"
}
