package list_conflicts

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-CalendarService/internal/service/conflicts/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(tenantID int64, query url.Values) (*models.ListConflictsRequest, error) {
	req := &models.ListConflictsRequest{
		TenantID: tenantID,
	}

	// Парсим status если указан
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	// Парсим type если указан
	if raw := query.Get("type"); raw != "" {
		req.Type = &raw
	}

	// Парсим bookingId если указан
	if raw := query.Get("bookingId"); raw != "" {
		bookingID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bookingId value: %w", err)
		}
		req.BookingID = &bookingID
	}

	// Парсим limit если указан
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("invalid limit value: %s", raw)
		}
		req.Limit = limit
	}

	return req, nil
}
