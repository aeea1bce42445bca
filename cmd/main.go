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

	cancelBookingHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/get_booking"
	getBookingByNumberHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/get_booking_by_number"
	getBusinessBookingsHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/get_business_bookings"
	getGuestBookingHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/get_guest_booking"
	getQueueStatusHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/get_queue_status"
	getScheduleHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/get_user_bookings"
	joinWaitlistHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/join_waitlist"
	leaveWaitlistHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/leave_waitlist"
	updateBookingStatusHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/jongque/JQ-BookingService/internal/api/handlers/update_schedule"
	"github.com/jongque/JQ-BookingService/internal/api/middleware"
	"github.com/jongque/JQ-BookingService/internal/config"
	bookingRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
	waitlistRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/waitlist"
	bookingsService "github.com/jongque/JQ-BookingService/internal/service/bookings"
	scheduleService "github.com/jongque/JQ-BookingService/internal/service/schedule"
	createBookingUC "github.com/jongque/JQ-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/jongque/JQ-BookingService/internal/usecase/get_availability"
	getQueueStatusUC "github.com/jongque/JQ-BookingService/internal/usecase/get_queue_status"
	joinWaitlistUC "github.com/jongque/JQ-BookingService/internal/usecase/join_waitlist"
	leaveWaitlistUC "github.com/jongque/JQ-BookingService/internal/usecase/leave_waitlist"
	"github.com/jongque/JQ-BookingService/pkg/dbmetrics"
	"github.com/jongque/JQ-BookingService/pkg/logger"
	"github.com/jongque/JQ-BookingService/pkg/metrics"
	"github.com/jongque/JQ-BookingService/pkg/simpletxmanager"
	"github.com/jongque/JQ-BookingService/pkg/txmanager"
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

	log.Info("Starting JQ-BookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		waitlistRepository *waitlistRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		waitlistRepository,
		scheduleRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	joinWaitlistUseCase := joinWaitlistUC.NewUseCase(
		waitlistRepository,
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	leaveWaitlistUseCase := leaveWaitlistUC.NewUseCase(
		waitlistRepository,
		txMgr,
		log,
	)
	getQueueStatusUseCase := getQueueStatusUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getQueueStatus := getQueueStatusHandler.NewHandler(getQueueStatusUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingByNumber := getBookingByNumberHandler.NewHandler(bookingSvc, log)
	getGuestBooking := getGuestBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(joinWaitlistUseCase, log)
	leaveWaitlist := leaveWaitlistHandler.NewHandler(leaveWaitlistUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

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

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/businesses/{businessId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Текущее состояние живой очереди
	api.HandleFunc("/businesses/{businessId}/queue",
		getQueueStatus.Handle).Methods(http.MethodGet)

	// Недельное расписание бизнеса
	api.HandleFunc("/businesses/{businessId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Просмотр гостевого бронирования по токену
	api.HandleFunc("/bookings/guest/{token}",
		getGuestBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// GUEST-FRIENDLY ROUTES (X-User-ID опционален)
	// ============================================================

	guestFriendly := api.PathPrefix("").Subrouter()
	guestFriendly.Use(middleware.OptionalAuth)

	// Создание бронирования (гость передаёт контактные данные вместо ID)
	guestFriendly.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования (гость подтверждает владение токеном)
	guestFriendly.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Поиск бронирования по человекочитаемому номеру
	protected.HandleFunc("/bookings/number/{bookingNumber}", getBookingByNumber.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования (для владельца бизнеса)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для владельцев) ---
	// Список бронирований бизнеса
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// Замена недельного расписания
	protected.HandleFunc("/businesses/{businessId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// --- Лист ожидания ---
	// Вступление в лист ожидания на занятый слот
	protected.HandleFunc("/businesses/{businessId}/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// Выход из листа ожидания
	protected.HandleFunc("/waitlist/{entryId}", leaveWaitlist.Handle).Methods(http.MethodDelete)

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
