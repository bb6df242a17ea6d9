package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	availabilityMatrixHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/availability_matrix"
	cancelBookingHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_booking"
	dashboardStatsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/dashboard_stats"
	detectConflictsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/detect_conflicts"
	executeAIActionHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/execute_ai_action"
	getBookingHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_booking"
	getSettingsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_settings"
	getTenantBookingsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_tenant_bookings"
	listConflictsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/list_conflicts"
	quotePriceHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/quote_price"
	resolveConflictHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/resolve_conflict"
	updateBookingStatusHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_booking_status"
	updateSettingsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/config"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	conflictRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/conflict"
	customerRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/customer"
	reservationRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/reservation"
	serviceRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/notifier"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CalendarService/internal/service/bookings"
	conflictdetectService "github.com/m04kA/SMC-CalendarService/internal/service/conflictdetect"
	conflictsService "github.com/m04kA/SMC-CalendarService/internal/service/conflicts"
	settingsService "github.com/m04kA/SMC-CalendarService/internal/service/settings"
	statsService "github.com/m04kA/SMC-CalendarService/internal/service/stats"
	availabilityMatrixUC "github.com/m04kA/SMC-CalendarService/internal/usecase/availability_matrix"
	checkAvailabilityUC "github.com/m04kA/SMC-CalendarService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
	detectConflictsUC "github.com/m04kA/SMC-CalendarService/internal/usecase/detect_conflicts"
	executeAIActionUC "github.com/m04kA/SMC-CalendarService/internal/usecase/execute_ai_action"
	quotePriceUC "github.com/m04kA/SMC-CalendarService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
	"github.com/m04kA/SMC-CalendarService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

// systemClock реальные часы для сервисов, зависящих от текущего времени
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .env необязателен, секреты могут приходить из окружения
	if err := godotenv.Load(); err == nil {
		fmt.Println("Environment overrides loaded from .env")
	}

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CalendarService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Издатель событий бронирований: Redis Pub/Sub или заглушка
	type Notifier interface {
		BookingCreated(ctx context.Context, booking *domain.Booking, conflicts []domain.ConflictRecord)
		BookingCancelled(ctx context.Context, booking *domain.Booking)
		BookingStatusChanged(ctx context.Context, booking *domain.Booking)
	}
	var eventPublisher Notifier

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.Timeout)*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// События публикуются fire-and-forget, недоступный Redis не блокирует старт
			log.Warn("Redis ping failed, booking events may be dropped: %v", err)
		}
		cancelPing()

		eventPublisher = notifier.NewPublisher(
			redisClient,
			cfg.Redis.Channel,
			time.Duration(cfg.Redis.Timeout)*time.Second,
			log,
		)
		log.Info("Event publisher initialized (redis=%s, channel=%s)", cfg.Redis.Addr, cfg.Redis.Channel)
	} else {
		eventPublisher = notifier.Noop{}
		log.Info("Redis disabled, booking events will not be published")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		reservationRepository *reservationRepo.Repository
		serviceRepository     *serviceRepo.Repository
		customerRepository    *customerRepo.Repository
		conflictRepository    *conflictRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		conflictRepository = conflictRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		conflictRepository = conflictRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		serviceRepository,
		reservationRepository,
		log,
	)
	conflictDetectSvc := conflictdetectService.NewService(
		availabilitySvc,
		settingsRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		reservationRepository,
		eventPublisher,
		systemClock{},
		log,
	)
	conflictsSvc := conflictsService.NewService(
		conflictRepository,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		log,
	)
	statsSvc := statsService.NewService(
		bookingRepository,
		reservationRepository,
		conflictRepository,
		serviceRepository,
		systemClock{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		reservationRepository,
		conflictRepository,
		customerRepository,
		serviceRepository,
		settingsRepository,
		conflictDetectSvc,
		txMgr,
		eventPublisher,
		createBookingUC.Config{AutoConfirmAIOnly: cfg.Booking.AutoConfirmAIOnly},
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(availabilitySvc, log)
	availabilityMatrixUseCase := availabilityMatrixUC.NewUseCase(availabilitySvc, log)
	detectConflictsUseCase := detectConflictsUC.NewUseCase(serviceRepository, conflictDetectSvc, log)
	quotePriceUseCase := quotePriceUC.NewUseCase(serviceRepository, log)
	executeAIActionUseCase := executeAIActionUC.NewUseCase(
		createBookingUseCase,
		bookingSvc,
		availabilitySvc,
		serviceRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	availabilityMatrix := availabilityMatrixHandler.NewHandler(availabilityMatrixUseCase, log)
	detectConflicts := detectConflictsHandler.NewHandler(detectConflictsUseCase, log)
	listConflicts := listConflictsHandler.NewHandler(conflictsSvc, log)
	resolveConflict := resolveConflictHandler.NewHandler(conflictsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	dashboardStats := dashboardStatsHandler.NewHandler(statsSvc, log)
	executeAIAction := executeAIActionHandler.NewHandler(executeAIActionUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix. Все маршруты тенантские, поэтому весь /api/v1
	// закрыт проверкой X-Tenant-ID и rate limiter'ом.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	rateLimiter := middleware.NewRateLimiter(cfg.Booking.RateLimitRPS, cfg.Booking.RateLimitBurst)
	api.Use(rateLimiter.Limit)

	// --- Бронирования ---
	// Создание бронирования с детекцией конфликтов
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Список бронирований тенанта с фильтрами
	api.HandleFunc("/bookings", getTenantBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	// Проверка доступности услуг в окне времени
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)

	// Матрица доступности по дням
	api.HandleFunc("/availability/matrix", availabilityMatrix.Handle).Methods(http.MethodGet)

	// --- Конфликты ---
	// Проверка запроса на конфликты без создания бронирования
	api.HandleFunc("/conflicts/detect", detectConflicts.Handle).Methods(http.MethodPost)

	// Журнал конфликтов тенанта
	api.HandleFunc("/conflicts", listConflicts.Handle).Methods(http.MethodGet)

	// Разрешение конфликта вручную
	api.HandleFunc("/conflicts/{conflictId}/resolve", resolveConflict.Handle).Methods(http.MethodPost)

	// --- Настройки календаря ---
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// --- Прайс и статистика ---
	// Расчет стоимости услуги за период
	api.HandleFunc("/pricing/quote", quotePrice.Handle).Methods(http.MethodPost)

	// Сводка для дашборда тенанта
	api.HandleFunc("/dashboard/stats", dashboardStats.Handle).Methods(http.MethodGet)

	// --- AI ассистент ---
	// Выполнение действия, запрошенного ассистентом
	api.HandleFunc("/assistant/actions", executeAIAction.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
