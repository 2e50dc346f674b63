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
	"github.com/robfig/cron/v3"

	availabilityHorizonHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/availability_horizon"
	checkAvailabilityHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/check_availability"
	createAvailabilityHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/create_availability"
	createBookingHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/create_booking"
	createRoomHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/create_room"
	deleteAvailabilityHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/delete_availability"
	deleteBookingHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/delete_booking"
	editAvailabilityHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/edit_availability"
	getRoomIntervalsHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/get_room_intervals"
	resizeBookingHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/resize_booking"
	updatePreferenceHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/update_preference"
	updateRoomHandler "github.com/m04kA/HC-RoomService/internal/api/handlers/update_room"
	"github.com/m04kA/HC-RoomService/internal/api/middleware"
	"github.com/m04kA/HC-RoomService/internal/config"
	intervalRepo "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	personRepo "github.com/m04kA/HC-RoomService/internal/infra/storage/person"
	roomRepo "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	mailServiceClient "github.com/m04kA/HC-RoomService/internal/integrations/mailservice"
	"github.com/m04kA/HC-RoomService/internal/jobs/expiry"
	availabilityService "github.com/m04kA/HC-RoomService/internal/service/availability"
	bookingsService "github.com/m04kA/HC-RoomService/internal/service/bookings"
	reassignmentService "github.com/m04kA/HC-RoomService/internal/service/reassignment"
	roomsService "github.com/m04kA/HC-RoomService/internal/service/rooms"
	createAvailabilityUC "github.com/m04kA/HC-RoomService/internal/usecase/create_availability"
	createBookingUC "github.com/m04kA/HC-RoomService/internal/usecase/create_booking"
	deleteAvailabilityUC "github.com/m04kA/HC-RoomService/internal/usecase/delete_availability"
	editAvailabilityUC "github.com/m04kA/HC-RoomService/internal/usecase/edit_availability"
	"github.com/m04kA/HC-RoomService/pkg/dbmetrics"
	"github.com/m04kA/HC-RoomService/pkg/logger"
	"github.com/m04kA/HC-RoomService/pkg/metrics"
	"github.com/m04kA/HC-RoomService/pkg/simpletxmanager"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
	"github.com/m04kA/HC-RoomService/pkg/txmanager"
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

	log.Info("Starting HC-RoomService...")
	log.Info("Configuration loaded from config.toml")

	// Нормализатор времени: все наивные даты интерпретируются в зоне общины
	norm, err := timeutil.NewNormalizer(cfg.Time.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Time.Timezone, err)
	}
	clock := timeutil.SystemClock{}

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

	// Клиент почтового сервиса для уведомлений о переселении
	mailClient := mailServiceClient.NewClient(
		cfg.MailService.URL,
		cfg.MailService.From,
		time.Duration(cfg.MailService.Timeout)*time.Second,
		log,
	)
	log.Info("Mail service client initialized (url=%s timeout=%ds)", cfg.MailService.URL, cfg.MailService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		intervalRepository *intervalRepo.Repository
		roomRepository     *roomRepo.Repository
		personRepository   *personRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		intervalRepository = intervalRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		personRepository = personRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		intervalRepository = intervalRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		personRepository = personRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(intervalRepository, roomRepository, norm, log)
	reassignmentSvc := reassignmentService.NewService(
		intervalRepository,
		roomRepository,
		personRepository,
		availabilitySvc,
		norm,
		metricsCollector,
		time.Now().UnixNano(),
		log,
	)
	roomsSvc := roomsService.NewService(intervalRepository, roomRepository, personRepository, txMgr, clock, norm, log)
	bookingsSvc := bookingsService.NewService(intervalRepository, roomRepository, availabilitySvc, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(intervalRepository, roomRepository, personRepository, txMgr, norm, log)
	createAvailabilityUseCase := createAvailabilityUC.NewUseCase(intervalRepository, roomRepository, availabilitySvc, txMgr, norm, log)
	editAvailabilityUseCase := editAvailabilityUC.NewUseCase(
		intervalRepository,
		roomRepository,
		availabilitySvc,
		reassignmentSvc,
		mailClient,
		txMgr,
		norm,
		log,
	)
	deleteAvailabilityUseCase := deleteAvailabilityUC.NewUseCase(
		intervalRepository,
		roomRepository,
		reassignmentSvc,
		mailClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, norm, log)
	availabilityHorizon := availabilityHorizonHandler.NewHandler(availabilitySvc, norm, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, norm, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingsSvc, log)
	resizeBooking := resizeBookingHandler.NewHandler(bookingsSvc, norm, log)
	createAvailability := createAvailabilityHandler.NewHandler(createAvailabilityUseCase, norm, log)
	editAvailability := editAvailabilityHandler.NewHandler(editAvailabilityUseCase, norm, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(deleteAvailabilityUseCase, log)
	getRoomIntervals := getRoomIntervalsHandler.NewHandler(bookingsSvc, log)
	updatePreference := updatePreferenceHandler.NewHandler(roomsSvc, log)
	createRoom := createRoomHandler.NewHandler(roomsSvc, log)
	updateRoom := updateRoomHandler.NewHandler(roomsSvc, log)

	// Фоновая зачистка истёкших интервалов
	scheduler := cron.New()
	if cfg.Expiry.Enabled {
		sweeper := expiry.NewSweeper(intervalRepository, clock, norm, log)
		if _, err := scheduler.AddFunc(cfg.Expiry.Schedule, func() {
			sweeper.Run(context.Background())
		}); err != nil {
			log.Fatal("Failed to schedule expiry sweep: %v", err)
		}
		scheduler.Start()
		log.Info("Expiry sweep scheduled: %s", cfg.Expiry.Schedule)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности комнаты на диапазон дат
	api.HandleFunc("/rooms/{roomId}/availability/check",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Горизонт непрерывного проживания
	api.HandleFunc("/rooms/{roomId}/availability/horizon",
		availabilityHorizon.Handle).Methods(http.MethodGet)

	// Календарь комнаты
	api.HandleFunc("/rooms/{roomId}/intervals",
		getRoomIntervals.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{intervalId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{intervalId}", resizeBooking.Handle).Methods(http.MethodPatch)

	// --- Доступность ---
	protected.HandleFunc("/rooms/{roomId}/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/{intervalId}", editAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/availability/{intervalId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Люди и комнаты ---
	protected.HandleFunc("/persons/{personId}/preference", updatePreference.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rooms/{roomId}", updateRoom.Handle).Methods(http.MethodPatch)

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

	if cfg.Expiry.Enabled {
		scheduler.Stop()
		log.Info("Expiry scheduler stopped")
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
