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
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_booking"
	getSettlementHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_settlement"
	listBookingsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/list_bookings"
	listRoomTypesHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/list_room_types"
	listRoomsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/list_rooms"
	previewCancellationHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/preview_cancellation"
	quoteStayHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/quote_stay"
	setRoomStateHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/set_room_state"
	updateBookingStatusHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/config"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/cache"
	inventoryRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/inventory"
	reservationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/servicecatalog"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-HotelBookingService/internal/service/bookings"
	inventoryService "github.com/m04kA/SMC-HotelBookingService/internal/service/inventory"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/refund"
	cancelBookingUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_availability"
	quoteStayUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/quote_stay"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/metrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

// Публикатор событий броней (RabbitMQ или заглушка)
type eventPublisher interface {
	PublishReservationCreated(ctx context.Context, event eventbus.ReservationCreatedEvent) error
	PublishReservationCancelled(ctx context.Context, event eventbus.ReservationCancelledEvent) error
}

func main() {
	configPath := "config.toml"
	if v, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-HotelBookingService (hotel=%q)...", cfg.Hotel.Name)
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Hotel.Location()
	if err != nil {
		log.Fatal("Invalid hotel timezone %q: %v", cfg.Hotel.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		inventoryRepository   *inventoryRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		inventoryRepository = inventoryRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		inventoryRepository = inventoryRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(dbmetrics.SqlDBBeginner{DB: db})
	}

	// Кэш номерного фонда в Redis (опционально)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, inventory will be read from database: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Inventory cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
		cancel()
	}
	inventoryCache := cache.NewInventoryCache(
		redisClient,
		inventoryRepository,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		log,
		metricsCollector,
	)

	// Публикация событий в RabbitMQ (опционально)
	var publisher eventPublisher = eventbus.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbit, err := eventbus.Connect(cfg.RabbitMQ.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Info("Event publishing enabled (RabbitMQ)")
	}

	// Клиент каталога доп. услуг
	catalogClient := servicecatalog.NewClient(
		cfg.ServiceCatalog.URL,
		time.Duration(cfg.ServiceCatalog.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ServiceCatalog=%s timeout=%ds)",
		cfg.ServiceCatalog.URL, cfg.ServiceCatalog.Timeout)

	// Доменные сервисы
	pendingBlocks := cfg.Booking.PendingBlocksRoom()
	availabilityIndex := availability.NewIndex(availability.Options{
		PendingBlocks: pendingBlocks,
		LookaheadDays: cfg.Availability.LookaheadDays,
	})
	pricingEngine := pricing.NewEngine(cfg.Pricing.ExtraGuestRateDecimal(), cfg.Pricing.Currency)
	refundCalculator := refund.NewCalculator(cfg.Cancellation.FeePercentDecimal())

	bookingSvc := bookingsService.NewService(reservationRepository, txMgr, pendingBlocks, location, log)
	inventorySvc := inventoryService.NewService(inventoryCache, inventoryRepository, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		inventoryCache,
		reservationRepository,
		availabilityIndex,
		pricingEngine,
		metricsCollector,
		location,
		log,
	)

	quoteStayUseCase := quoteStayUC.NewUseCase(inventoryCache, catalogClient, pricingEngine, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		inventoryRepository,
		catalogClient,
		pricingEngine,
		publisher,
		metricsCollector,
		txMgr,
		createBookingUC.Options{
			PendingBlocks:         pendingBlocks,
			RequireAdvancePayment: cfg.Booking.RequireAdvancePayment,
			Location:              location,
		},
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		reservationRepository,
		refundCalculator,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	quoteStay := quoteStayHandler.NewHandler(quoteStayUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	previewCancellation := previewCancellationHandler.NewHandler(cancelBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getSettlement := getSettlementHandler.NewHandler(bookingSvc, log)
	listRooms := listRoomsHandler.NewHandler(inventorySvc, log)
	listRoomTypes := listRoomTypesHandler.NewHandler(inventorySvc, log)
	setRoomState := setRoomStateHandler.NewHandler(inventorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность и расчет ---
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/quotes", quoteStay.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Отмена ---
	api.HandleFunc("/bookings/{bookingId}/cancellation-preview", previewCancellation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/settlement", getSettlement.Handle).Methods(http.MethodGet)

	// --- Номерной фонд ---
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/room-types", listRoomTypes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomNumber}/state", setRoomState.Handle).Methods(http.MethodPut)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
