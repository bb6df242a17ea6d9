package service

import (
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов к БД (может быть *sql.DB или *sql.Tx)
type DBExecutor = dbmetrics.DBExecutor
