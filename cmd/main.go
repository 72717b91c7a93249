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

	cancelBookingHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/cancel_booking"
	crowdDashboardHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/crowd_dashboard"
	getAvailabilityHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_availability"
	getBookingPageHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_booking_page"
	manualBookingHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/manual_booking"
	memberHistoryHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/member_history"
	placeBookingHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/place_booking"
	updateStatusHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/update_status"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	"github.com/m04kA/GMS-BookingService/internal/config"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	capacityRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/capacity"
	memberServiceClient "github.com/m04kA/GMS-BookingService/internal/integrations/memberservice"
	notifyServiceClient "github.com/m04kA/GMS-BookingService/internal/integrations/notifyservice"
	advisorService "github.com/m04kA/GMS-BookingService/internal/service/advisor"
	bookingsService "github.com/m04kA/GMS-BookingService/internal/service/bookings"
	reminderService "github.com/m04kA/GMS-BookingService/internal/service/reminder"
	"github.com/m04kA/GMS-BookingService/internal/token"
	getSlotAvailabilityUC "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
	placeBookingUC "github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/logger"
	"github.com/m04kA/GMS-BookingService/pkg/metrics"
	"github.com/m04kA/GMS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/GMS-BookingService/pkg/txmanager"
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

	log.Info("Starting GMS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Операционная зона залов: все даты бронирований считаются в ней
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

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
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MemberService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.MemberService.URL, cfg.MemberService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		capacityRepository *capacityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		capacityRepository = capacityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		capacityRepository = capacityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Менеджер бронировочных токенов
	tokenManager := token.NewManager(
		cfg.Booking.TokenSecret,
		time.Duration(cfg.Booking.TokenTTLMinutes)*time.Minute,
	)

	timeProvider := &placeBookingUC.RealTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		timeProvider,
		location,
		log,
	)
	advisorSvc := advisorService.NewService(
		bookingRepository,
		timeProvider,
		location,
		log,
	)

	// Инициализируем use cases
	placeBookingUseCase := placeBookingUC.NewUseCase(
		bookingRepository,
		capacityRepository,
		memberClient,
		notifyClient,
		txMgr,
		timeProvider,
		location,
		cfg.Booking.HardCapacityLimit,
		log,
	)
	getSlotAvailabilityUseCase := getSlotAvailabilityUC.NewUseCase(
		bookingRepository,
		capacityRepository,
		location,
		log,
	)

	// Ежедневная рассылка напоминаний
	reminderCtx, stopReminder := context.WithCancel(context.Background())
	defer stopReminder()

	if cfg.Reminder.Enabled {
		reminderSvc := reminderService.NewService(
			bookingRepository,
			advisorSvc,
			placeBookingUseCase,
			tokenManager,
			notifyClient,
			timeProvider,
			location,
			reminderService.Config{
				Hour:       cfg.Reminder.Hour,
				WindowDays: cfg.Reminder.WindowDays,
				AutoBook:   cfg.Reminder.AutoBook,
				LinkBase:   cfg.Reminder.LinkBase,
			},
			log,
		)
		go reminderSvc.Run(reminderCtx)
		log.Info("Reminder sweep enabled (hour=%d, autoBook=%t)", cfg.Reminder.Hour, cfg.Reminder.AutoBook)
	}

	// Инициализируем handlers
	getBookingPage := getBookingPageHandler.NewHandler(
		getSlotAvailabilityUseCase, bookingSvc, advisorSvc, tokenManager, timeProvider, log)
	placeBooking := placeBookingHandler.NewHandler(placeBookingUseCase, tokenManager, timeProvider, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, tokenManager, timeProvider, log)
	getAvailability := getAvailabilityHandler.NewHandler(getSlotAvailabilityUseCase, location, log)
	manualBooking := manualBookingHandler.NewHandler(placeBookingUseCase, timeProvider, location, log)
	crowdDashboard := crowdDashboardHandler.NewHandler(getSlotAvailabilityUseCase, timeProvider, location, log)
	updateStatus := updateStatusHandler.NewHandler(bookingSvc, location, log)
	memberHistory := memberHistoryHandler.NewHandler(bookingSvc, advisorSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// MEMBER ROUTES (авторизация бронировочным токеном)
	// ============================================================

	// Страница бронирования по ссылке из рассылки
	api.HandleFunc("/slots/book", getBookingPage.Handle).Methods(http.MethodGet)

	// Самостоятельная запись на слот
	api.HandleFunc("/slots/book", placeBooking.Handle).Methods(http.MethodPost)

	// Самостоятельная отмена записи
	api.HandleFunc("/slots/book/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Публичная загруженность слотов (только при включенной crowd-фиче)
	api.HandleFunc("/slots/availability/{tenantId}/{date}", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// OWNER ROUTES (требуют X-Owner-ID header)
	// ============================================================

	protected := api.PathPrefix("/tenants/{tenantId}").Subrouter()
	protected.Use(middleware.OwnerAuth)

	// Ручное бронирование участника владельцем
	protected.HandleFunc("/slots/manual-book", manualBooking.Handle).Methods(http.MethodPost)

	// Дашборд загруженности с участниками по слотам
	protected.HandleFunc("/slots/crowd-dashboard", crowdDashboard.Handle).Methods(http.MethodGet)

	// Отметка посещения: no_show / completed
	protected.HandleFunc("/bookings/status", updateStatus.Handle).Methods(http.MethodPatch)

	// История и привычки участника
	protected.HandleFunc("/members/{memberId}/history", memberHistory.Handle).Methods(http.MethodGet)

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

	// Останавливаем рассылку напоминаний
	stopReminder()

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
