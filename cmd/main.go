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

	blockSlotHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/create_booking"
	createPhysicalBookingHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/create_physical_booking"
	expireBookingHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/expire_booking"
	getBookingHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/get_booking"
	getSlotAvailabilityHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/get_slot_availability"
	getUserBookingsHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/get_venue_bookings"
	getVenueConfigHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/get_venue_config"
	reserveSlotHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/reserve_slot"
	sweepHoldsHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/sweep_holds"
	updateVenueConfigHandler "github.com/m04kA/SVB-ReservationService/internal/api/handlers/update_venue_config"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	"github.com/m04kA/SVB-ReservationService/internal/config"
	bookingRepo "github.com/m04kA/SVB-ReservationService/internal/infra/storage/booking"
	venueStateRepo "github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
	identityServiceClient "github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	paymentGatewayClient "github.com/m04kA/SVB-ReservationService/internal/integrations/paymentgateway"
	bookingsService "github.com/m04kA/SVB-ReservationService/internal/service/bookings"
	reservationService "github.com/m04kA/SVB-ReservationService/internal/service/reservation"
	venueConfigService "github.com/m04kA/SVB-ReservationService/internal/service/venueconfig"
	cancelBookingUC "github.com/m04kA/SVB-ReservationService/internal/usecase/cancel_booking"
	confirmPaymentUC "github.com/m04kA/SVB-ReservationService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SVB-ReservationService/internal/usecase/create_booking"
	createPhysicalBookingUC "github.com/m04kA/SVB-ReservationService/internal/usecase/create_physical_booking"
	expireBookingUC "github.com/m04kA/SVB-ReservationService/internal/usecase/expire_booking"
	getSlotAvailabilityUC "github.com/m04kA/SVB-ReservationService/internal/usecase/get_slot_availability"
	manageSlotUC "github.com/m04kA/SVB-ReservationService/internal/usecase/manage_slot"
	sweepExpiredHoldsUC "github.com/m04kA/SVB-ReservationService/internal/usecase/sweep_expired_holds"
	"github.com/m04kA/SVB-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SVB-ReservationService/pkg/logger"
	"github.com/m04kA/SVB-ReservationService/pkg/metrics"
	"github.com/m04kA/SVB-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SVB-ReservationService/pkg/txmanager"
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

	log.Info("Starting SVB-ReservationService...")
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

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentGatewayClient.NewClient(
		cfg.PaymentGateway.URL,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds, PaymentGateway=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout, cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		venueStateRepository *venueStateRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		venueStateRepository = venueStateRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		venueStateRepository = venueStateRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Движок резервирования: единственная точка записи в состояние слотов
	var engineMetrics reservationService.Metrics
	if cfg.Metrics.Enabled {
		engineMetrics = metricsCollector
	}
	holdTTL := time.Duration(cfg.Booking.HoldTTLMinutes) * time.Minute
	engine := reservationService.New(
		venueStateRepository,
		&reservationService.RealTimeProvider{},
		engineMetrics,
		log,
		holdTTL,
	)
	log.Info("Reservation engine initialized (hold_ttl=%s)", holdTTL)

	// Инициализируем сервисы
	bookingSvc := bookingsService.New(bookingRepository, log)
	venueConfigSvc := venueConfigService.New(
		venueStateRepository,
		&venueConfigService.RealTimeProvider{},
		log,
		cfg.Booking.DefaultCancellationHours,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		venueStateRepository,
		bookingRepository,
		engine,
		txMgr,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		engine,
		paymentClient,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		venueStateRepository,
		engine,
		identityClient,
		txMgr,
		log,
	)
	expireBookingUseCase := expireBookingUC.NewUseCase(
		bookingRepository,
		engine,
		txMgr,
		log,
	)
	createPhysicalBookingUseCase := createPhysicalBookingUC.NewUseCase(
		venueStateRepository,
		bookingRepository,
		engine,
		identityClient,
		txMgr,
		log,
	)
	getSlotAvailabilityUseCase := getSlotAvailabilityUC.NewUseCase(venueStateRepository, log)
	manageSlotUseCase := manageSlotUC.NewUseCase(engine, identityClient, log)

	var sweepMetrics sweepExpiredHoldsUC.Metrics
	if cfg.Metrics.Enabled {
		sweepMetrics = metricsCollector
	}
	sweepUseCase := sweepExpiredHoldsUC.NewUseCase(venueStateRepository, sweepMetrics, log)

	// Инициализируем handlers
	getSlotAvailability := getSlotAvailabilityHandler.NewHandler(getSlotAvailabilityUseCase, log)
	getVenueConfig := getVenueConfigHandler.NewHandler(venueConfigSvc, log)
	updateVenueConfig := updateVenueConfigHandler.NewHandler(venueConfigSvc, identityClient, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	expireBooking := expireBookingHandler.NewHandler(expireBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, identityClient, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, identityClient, log)
	createPhysicalBooking := createPhysicalBookingHandler.NewHandler(createPhysicalBookingUseCase, log)
	blockSlot := blockSlotHandler.NewHandler(manageSlotUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(manageSlotUseCase, log)
	sweepHolds := sweepHoldsHandler.NewHandler(sweepUseCase, log)

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

	// Служебный запуск чистки истёкших удержаний
	r.HandleFunc("/internal/sweep", sweepHolds.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проекция слотов площадки на диапазон дат
	api.HandleFunc("/venues/{venueId}/availability",
		getSlotAvailability.Handle).Methods(http.MethodGet)

	// Получение конфигурации сетки слотов площадки
	api.HandleFunc("/venues/{venueId}/config",
		getVenueConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (захват слота удержанием)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение оплаты аванса
	protected.HandleFunc("/bookings/{bookingId}/confirm-payment", confirmPayment.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перевод неоплаченного бронирования в expired
	protected.HandleFunc("/bookings/{bookingId}/expire", expireBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для менеджеров) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Обновление конфигурации сетки площадки
	protected.HandleFunc("/venues/{venueId}/config", updateVenueConfig.Handle).Methods(http.MethodPut)

	// Физическое бронирование от имени менеджера
	protected.HandleFunc("/venues/{venueId}/physical-bookings", createPhysicalBooking.Handle).Methods(http.MethodPost)

	// Блокировка и разблокировка слотов
	protected.HandleFunc("/venues/{venueId}/blocked-slots", blockSlot.HandleBlock).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}/blocked-slots", blockSlot.HandleUnblock).Methods(http.MethodDelete)

	// Информационная пометка слотов
	protected.HandleFunc("/venues/{venueId}/reserved-slots", reserveSlot.HandleReserve).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}/reserved-slots", reserveSlot.HandleUnreserve).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновая чистка истёкших удержаний
	stopSweeperCh := make(chan struct{})
	if cfg.Sweeper.Enabled {
		interval := time.Duration(cfg.Sweeper.IntervalMinutes) * time.Minute
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if _, err := sweepUseCase.Execute(context.Background(), sweepExpiredHoldsUC.TriggerTicker); err != nil {
						log.Error("Background sweep failed: %v", err)
					}
				case <-stopSweeperCh:
					return
				}
			}
		}()
		log.Info("Background hold sweeper started (interval=%s)", interval)
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

	// Останавливаем фоновую чистку
	if cfg.Sweeper.Enabled {
		close(stopSweeperCh)
		log.Info("Background hold sweeper stopped")
	}

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
