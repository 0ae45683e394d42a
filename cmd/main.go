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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-GeoBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-GeoBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-GeoBookingService/internal/api/handlers/get_booking"
	getCapacityConfigHandler "github.com/m04kA/SMC-GeoBookingService/internal/api/handlers/get_capacity_config"
	getMonthAvailabilityHandler "github.com/m04kA/SMC-GeoBookingService/internal/api/handlers/get_month_availability"
	getPriceQuoteHandler "github.com/m04kA/SMC-GeoBookingService/internal/api/handlers/get_price_quote"
	getUserBookingsHandler "github.com/m04kA/SMC-GeoBookingService/internal/api/handlers/get_user_bookings"
	updateCapacityConfigHandler "github.com/m04kA/SMC-GeoBookingService/internal/api/handlers/update_capacity_config"
	"github.com/m04kA/SMC-GeoBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GeoBookingService/internal/config"
	"github.com/m04kA/SMC-GeoBookingService/internal/geozone"
	bookingRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/settings"
	zoneRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/zone"
	notifyServiceClient "github.com/m04kA/SMC-GeoBookingService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/SMC-GeoBookingService/internal/service/bookings"
	configService "github.com/m04kA/SMC-GeoBookingService/internal/service/config"
	createBookingUC "github.com/m04kA/SMC-GeoBookingService/internal/usecase/create_booking"
	getMonthAvailabilityUC "github.com/m04kA/SMC-GeoBookingService/internal/usecase/get_month_availability"
	getPriceQuoteUC "github.com/m04kA/SMC-GeoBookingService/internal/usecase/get_price_quote"
	"github.com/m04kA/SMC-GeoBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GeoBookingService/pkg/logger"
	"github.com/m04kA/SMC-GeoBookingService/pkg/metrics"
	"github.com/m04kA/SMC-GeoBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-GeoBookingService/pkg/txmanager"
)

func main() {
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

	log.Info("Starting SMC-GeoBookingService...")
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

	// Инициализируем клиент NotifyService (если включен)
	var notifyClient createBookingUC.NotifyServiceClient
	if cfg.NotifyService.Enabled {
		notifyClient = notifyServiceClient.NewClient(
			cfg.NotifyService.URL,
			time.Duration(cfg.NotifyService.Timeout)*time.Second,
			log,
		)
		log.Info("NotifyService client initialized (url=%s timeout=%ds)",
			cfg.NotifyService.URL, cfg.NotifyService.Timeout)
	} else {
		log.Info("NotifyService client disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		catalogRepository  *catalogRepo.Repository
		zoneRepository     *zoneRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	var txMgr createBookingUC.TransactionManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		zoneRepository = zoneRepo.NewRepository(wrappedDB, log)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		zoneRepository = zoneRepo.NewRepository(db, log)
		scheduleRepository = scheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Резолвер геозон
	zoneResolver := geozone.NewResolver(log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	configSvc := configService.NewService(settingsRepository, scheduleRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		zoneRepository,
		scheduleRepository,
		settingsRepository,
		zoneResolver,
		notifyClient,
		txMgr,
		log,
	)

	getMonthAvailabilityUseCase := getMonthAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		settingsRepository,
		log,
	)

	getPriceQuoteUseCase := getPriceQuoteUC.NewUseCase(
		catalogRepository,
		zoneRepository,
		zoneResolver,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(getMonthAvailabilityUseCase, log)
	getPriceQuote := getPriceQuoteHandler.NewHandler(getPriceQuoteUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCapacityConfig := getCapacityConfigHandler.NewHandler(configSvc, log)
	updateCapacityConfig := updateCapacityConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь доступности на месяц
	api.HandleFunc("/availability", getMonthAvailability.Handle).Methods(http.MethodGet)

	// Котировка цены по координатам
	api.HandleFunc("/price-quote", getPriceQuote.Handle).Methods(http.MethodGet)

	// Текущая конфигурация вместимости и расписания
	api.HandleFunc("/config", getCapacityConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Обновление лимитов вместимости
	protected.HandleFunc("/config", updateCapacityConfig.Handle).Methods(http.MethodPut)

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
