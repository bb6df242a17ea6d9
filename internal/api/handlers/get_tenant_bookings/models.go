package get_tenant_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(tenantID int64, query url.Values) (*models.GetBookingsRequest, error) {
	req := &models.GetBookingsRequest{
		TenantID:        tenantID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим customerId если указан
	if raw := query.Get("customerId"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid customerId value: %w", err)
		}
		req.CustomerID = &customerID
	}

	// Парсим serviceId если указан
	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid serviceId value: %w", err)
		}
		req.ServiceID = &serviceID
	}

	// Парсим status если указан
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	// Парсим границы периода. Граница to включает весь указанный день.
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		endOfDay := to.AddDate(0, 0, 1)
		req.To = &endOfDay
	}

	// Парсим includeInactive если указан
	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
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
