package check_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service id is required", ErrInvalidInput)
	}

	for i, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceIds[%d] must be positive", ErrInvalidInput, i)
		}
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

	if req.ExcludeBookingID != nil && *req.ExcludeBookingID <= 0 {
		return fmt.Errorf("%w: excludeBookingId must be positive", ErrInvalidInput)
	}

	return nil
}
