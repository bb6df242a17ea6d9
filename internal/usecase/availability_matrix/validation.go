package availability_matrix

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() {
		return fmt.Errorf("%w: from date is required", ErrInvalidInput)
	}

	if req.To.IsZero() {
		return fmt.Errorf("%w: to date is required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to date must not be before from date", ErrInvalidInput)
	}

	// Обе границы включительно
	days := int(req.To.Sub(req.From).Hours()/24) + 1
	if days > domain.MaxMatrixRangeDays {
		return fmt.Errorf("%w: %d days requested, maximum is %d", ErrRangeTooWide, days, domain.MaxMatrixRangeDays)
	}

	for i, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceIds[%d] must be positive", ErrInvalidInput, i)
		}
	}

	return nil
}
