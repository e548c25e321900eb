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

	"github.com/shoemant/strata-web/internal/api/handlers"
	cancelBookingHandler "github.com/shoemant/strata-web/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/shoemant/strata-web/internal/api/handlers/create_booking"
	createIntervalBookingHandler "github.com/shoemant/strata-web/internal/api/handlers/create_interval_booking"
	createResourceHandler "github.com/shoemant/strata-web/internal/api/handlers/create_resource"
	createResourceTypeHandler "github.com/shoemant/strata-web/internal/api/handlers/create_resource_type"
	getBookingHandler "github.com/shoemant/strata-web/internal/api/handlers/get_booking"
	getBuildingBookingsHandler "github.com/shoemant/strata-web/internal/api/handlers/get_building_bookings"
	getBuildingResourceTypesHandler "github.com/shoemant/strata-web/internal/api/handlers/get_building_resource_types"
	getBuildingResourcesHandler "github.com/shoemant/strata-web/internal/api/handlers/get_building_resources"
	getOpenSlotsHandler "github.com/shoemant/strata-web/internal/api/handlers/get_open_slots"
	getResourceHandler "github.com/shoemant/strata-web/internal/api/handlers/get_resource"
	getUserBookingsHandler "github.com/shoemant/strata-web/internal/api/handlers/get_user_bookings"
	setResourceActiveHandler "github.com/shoemant/strata-web/internal/api/handlers/set_resource_active"
	updateAvailabilityHandler "github.com/shoemant/strata-web/internal/api/handlers/update_availability"
	"github.com/shoemant/strata-web/internal/api/middleware"
	"github.com/shoemant/strata-web/internal/config"
	availabilityRepo "github.com/shoemant/strata-web/internal/infra/storage/availability"
	bookingRepo "github.com/shoemant/strata-web/internal/infra/storage/booking"
	resourceRepo "github.com/shoemant/strata-web/internal/infra/storage/resource"
	identityServiceClient "github.com/shoemant/strata-web/internal/integrations/identityservice"
	bookingsService "github.com/shoemant/strata-web/internal/service/bookings"
	resourcesService "github.com/shoemant/strata-web/internal/service/resources"
	bookIntervalUC "github.com/shoemant/strata-web/internal/usecase/book_interval"
	bookSlotUC "github.com/shoemant/strata-web/internal/usecase/book_slot"
	getOpenSlotsUC "github.com/shoemant/strata-web/internal/usecase/get_open_slots"
	updateAvailabilityUC "github.com/shoemant/strata-web/internal/usecase/update_availability"
	"github.com/shoemant/strata-web/pkg/dbmetrics"
	"github.com/shoemant/strata-web/pkg/logger"
	"github.com/shoemant/strata-web/pkg/metrics"
	"github.com/shoemant/strata-web/pkg/simpletxmanager"
	"github.com/shoemant/strata-web/pkg/txmanager"
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

	log.Info("Starting Strata-SchedulerService...")
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
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		resourceRepository     *resourceRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		bookingRepository      *bookingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		resourceRepository = resourceRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		resourceRepository,
		identityClient,
		log,
	)
	resourceSvc := resourcesService.NewService(
		resourceRepository,
		availabilityRepository,
		identityClient,
		log,
	)

	// Инициализируем use cases
	updateAvailabilityUseCase := updateAvailabilityUC.NewUseCase(
		resourceRepository,
		availabilityRepository,
		bookingRepository,
		identityClient,
		txMgr,
		log,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		resourceRepository,
		availabilityRepository,
		bookingRepository,
		txMgr,
		log,
	)
	bookIntervalUseCase := bookIntervalUC.NewUseCase(
		resourceRepository,
		availabilityRepository,
		bookingRepository,
		txMgr,
		log,
	)
	getOpenSlotsUseCase := getOpenSlotsUC.NewUseCase(
		resourceRepository,
		availabilityRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(bookSlotUseCase, metricsCollector, log)
	createIntervalBooking := createIntervalBookingHandler.NewHandler(bookIntervalUseCase, metricsCollector, log)
	getOpenSlots := getOpenSlotsHandler.NewHandler(getOpenSlotsUseCase, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(updateAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBuildingBookings := getBuildingBookingsHandler.NewHandler(bookingSvc, log)
	createResource := createResourceHandler.NewHandler(resourceSvc, log)
	getResource := getResourceHandler.NewHandler(resourceSvc, log)
	getBuildingResources := getBuildingResourcesHandler.NewHandler(resourceSvc, log)
	setResourceActive := setResourceActiveHandler.NewHandler(resourceSvc, log)
	createResourceType := createResourceTypeHandler.NewHandler(resourceSvc, log)
	getBuildingResourceTypes := getBuildingResourceTypesHandler.NewHandler(resourceSvc, log)

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

	// Health endpoint (публичный, без аутентификации)
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			log.Warn("Health check failed: database unreachable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Открытые слоты ресурса на дату
	api.HandleFunc("/resources/{resourceId}/slots", getOpenSlots.Handle).Methods(http.MethodGet)

	// Карточка ресурса и его расписание доступности
	api.HandleFunc("/resources/{resourceId}", getResource.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/availability", getResource.HandleAvailability).Methods(http.MethodGet)

	// Каталог ресурсов и типов здания
	api.HandleFunc("/buildings/{buildingId}/resources", getBuildingResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/buildings/{buildingId}/resource-types", getBuildingResourceTypes.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Бронирование фиксированного слота
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Бронирование произвольного интервала (free-form ресурсы)
	protected.HandleFunc("/interval-bookings", createIntervalBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление зданием (для менеджеров) ---
	// Список бронирований по зданию
	protected.HandleFunc("/buildings/{buildingId}/bookings", getBuildingBookings.Handle).Methods(http.MethodGet)

	// Замена расписания доступности ресурса
	protected.HandleFunc("/resources/{resourceId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

	// Создание и управление ресурсами
	protected.HandleFunc("/resources", createResource.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId}/active", setResourceActive.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/buildings/{buildingId}/resource-types", createResourceType.Handle).Methods(http.MethodPost)

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
