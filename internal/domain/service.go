package domain

import (
	"math"
	"time"
)

// AvailabilityType политика доступности услуги или оборудования
type AvailabilityType string

const (
	// AvailabilityUnlimited без ограничения количества
	AvailabilityUnlimited AvailabilityType = "unlimited"
	// AvailabilityLimited ограничено полем Quantity
	AvailabilityLimited AvailabilityType = "limited"
	// AvailabilityUnique единственный экземпляр: любое пересечение
	// по времени считается конфликтом без арифметики количества
	AvailabilityUnique AvailabilityType = "unique"
)

// IsValidAvailabilityType reports whether the value is a known availability type
func IsValidAvailabilityType(t AvailabilityType) bool {
	switch t {
	case AvailabilityUnlimited, AvailabilityLimited, AvailabilityUnique:
		return true
	default:
		return false
	}
}

// ServiceItem a bookable service or equipment item from the tenant's catalog
type ServiceItem struct {
	ID          int64
	TenantID    int64
	Name        string
	Description string
	Category    string

	AvailabilityType AvailabilityType
	Quantity         int // Имеет смысл только для limited
	Active           bool

	// Тарифы: BasePrice обязателен, остальные опциональны.
	// Нулевая ставка равнозначна отсутствующей.
	BasePrice    float64
	PricePerHour *float64
	PricePerDay  *float64
	PricePerWeek *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

const hoursPerWeek = 168

// PriceForDuration вычисляет цену за длительность в часах по тарифной
// сетке услуги. Порядок выбора ставки фиксирован и виден клиентам в
// котировках, менять его нельзя:
//  1. до часа включительно действует почасовая ставка;
//  2. до суток включительно действует дневная;
//  3. до недели включительно действует недельная;
//  4. дольше недели: целые недели по недельной ставке плюс остаток,
//     оцененный этим же правилом рекурсивно;
//  5. без подходящей ставки: дневная за целые дни (минимум один день),
//     иначе почасовая за точное количество часов, иначе базовая цена.
func (s *ServiceItem) PriceForDuration(hours float64) float64 {
	switch {
	case hours <= 1 && hasRate(s.PricePerHour):
		return *s.PricePerHour
	case hours <= 24 && hasRate(s.PricePerDay):
		return *s.PricePerDay
	case hours <= hoursPerWeek && hasRate(s.PricePerWeek):
		return *s.PricePerWeek
	}

	if hasRate(s.PricePerWeek) && hours > hoursPerWeek {
		weeks := math.Floor(hours / hoursPerWeek)
		remaining := hours - weeks*hoursPerWeek
		return weeks*(*s.PricePerWeek) + s.PriceForDuration(remaining)
	}
	if hasRate(s.PricePerDay) {
		days := math.Max(1, math.Floor(hours/24))
		return days * (*s.PricePerDay)
	}
	if hasRate(s.PricePerHour) {
		return hours * (*s.PricePerHour)
	}
	return s.BasePrice
}

func hasRate(rate *float64) bool {
	return rate != nil && *rate > 0
}

// ServiceRef ссылка на услугу в запросе: по идентификатору или по имени.
// Имя сопоставляется без учета регистра по вхождению подстроки.
type ServiceRef struct {
	ID       *int64
	Name     *string
	Quantity int // 0 трактуется как 1
}

// RequestedQuantity возвращает запрошенное количество, минимум 1
func (r ServiceRef) RequestedQuantity() int {
	if r.Quantity < 1 {
		return 1
	}
	return r.Quantity
}

// RequestedService услуга, разрешенная из ServiceRef, с запрошенным количеством
type RequestedService struct {
	Service  ServiceItem
	Quantity int
}
