package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

func TestServiceItem_PriceForDuration_RateSelection(t *testing.T) {
	svc := ServiceItem{
		BasePrice:    500,
		PricePerHour: ptr.Ptr(10.0),
		PricePerDay:  ptr.Ptr(50.0),
		PricePerWeek: ptr.Ptr(200.0),
	}

	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{"half hour uses hourly rate", 0.5, 10},
		{"exactly one hour uses hourly rate", 1, 10},
		{"two hours uses daily rate", 2, 50},
		{"exactly one day uses daily rate", 24, 50},
		{"two days uses weekly rate", 48, 200},
		{"exactly one week uses weekly rate", 168, 200},
		{"ten days combines weeks and remainder", 240, 200 + 200}, // 1 неделя + остаток, оцененный недельной ставкой
		{"two weeks charges each week", 336 + 1, 200 + 200 + 10},  // 2 недели + час по почасовой ставке
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, svc.PriceForDuration(tt.hours), 1e-9)
		})
	}
}

func TestServiceItem_PriceForDuration_Fallbacks(t *testing.T) {
	t.Run("no weekly rate falls back to whole days", func(t *testing.T) {
		svc := ServiceItem{
			BasePrice:   500,
			PricePerDay: ptr.Ptr(50.0),
		}
		// 10 суток, дневная ставка за целые дни
		assert.InDelta(t, 500.0, svc.PriceForDuration(240), 1e-9)
	})

	t.Run("short booking without hourly rate uses daily", func(t *testing.T) {
		svc := ServiceItem{
			BasePrice:   500,
			PricePerDay: ptr.Ptr(50.0),
		}
		assert.InDelta(t, 50.0, svc.PriceForDuration(0.5), 1e-9)
	})

	t.Run("hourly rate only multiplies exact hours", func(t *testing.T) {
		svc := ServiceItem{
			BasePrice:    500,
			PricePerHour: ptr.Ptr(10.0),
		}
		assert.InDelta(t, 300.0, svc.PriceForDuration(30), 1e-9)
	})

	t.Run("no rates at all falls back to base price", func(t *testing.T) {
		svc := ServiceItem{BasePrice: 500}
		assert.InDelta(t, 500.0, svc.PriceForDuration(36), 1e-9)
	})

	t.Run("zero rate treated as absent", func(t *testing.T) {
		svc := ServiceItem{
			BasePrice:    500,
			PricePerHour: ptr.Ptr(0.0),
			PricePerDay:  ptr.Ptr(50.0),
		}
		assert.InDelta(t, 50.0, svc.PriceForDuration(1), 1e-9)
	})
}

func TestServiceItem_PriceForDuration_Monotonic(t *testing.T) {
	svc := ServiceItem{
		BasePrice:    100,
		PricePerHour: ptr.Ptr(10.0),
		PricePerDay:  ptr.Ptr(60.0),
		PricePerWeek: ptr.Ptr(300.0),
	}

	prev := 0.0
	for hours := 0.5; hours <= 24*7*4; hours += 0.5 {
		price := svc.PriceForDuration(hours)
		assert.GreaterOrEqual(t, price, prev, "price must not decrease at %.1f hours", hours)
		prev = price
	}
}

func TestServiceRef_RequestedQuantity(t *testing.T) {
	assert.Equal(t, 1, ServiceRef{}.RequestedQuantity())
	assert.Equal(t, 1, ServiceRef{Quantity: -2}.RequestedQuantity())
	assert.Equal(t, 3, ServiceRef{Quantity: 3}.RequestedQuantity())
}

func TestIsValidAvailabilityType(t *testing.T) {
	assert.True(t, IsValidAvailabilityType(AvailabilityUnlimited))
	assert.True(t, IsValidAvailabilityType(AvailabilityLimited))
	assert.True(t, IsValidAvailabilityType(AvailabilityUnique))
	assert.False(t, IsValidAvailabilityType("infinite"))
}
