package dashboard_stats

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/stats/models"
)

type StatsService interface {
	Dashboard(ctx context.Context, tenantID int64) (*models.DashboardStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
