package quote_price

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.Service.ID == nil && (req.Service.Name == nil || *req.Service.Name == "") {
		return fmt.Errorf("%w: service id or name is required", ErrInvalidInput)
	}

	if req.Service.ID != nil && *req.Service.ID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}

	if req.Service.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
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

	return nil
}

// serviceRefLabel возвращает печатное представление ссылки на услугу
func serviceRefLabel(ref domain.ServiceRef) string {
	if ref.Name != nil && *ref.Name != "" {
		return *ref.Name
	}
	if ref.ID != nil {
		return fmt.Sprintf("#%d", *ref.ID)
	}
	return "unknown"
}
