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

	cancelBookingHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/get_business_bookings"
	getBusinessConfigHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/get_business_config"
	getCustomerBookingsHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/get_customer_bookings"
	getCustomerOrdersHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/get_customer_orders"
	getWorkingHoursHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/get_working_hours"
	setWorkingHoursHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/set_working_hours"
	updateBookingStatusHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/update_booking_status"
	updateBusinessConfigHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/update_business_config"
	whatsappWebhookHandler "github.com/m04kA/SMC-ChatbotService/internal/api/handlers/whatsapp_webhook"
	"github.com/m04kA/SMC-ChatbotService/internal/api/middleware"
	"github.com/m04kA/SMC-ChatbotService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/business"
	configRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/config"
	conversationRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/conversation"
	orderRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/order"
	sessionRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/session"
	workingHoursRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/workinghours"
	openaiClient "github.com/m04kA/SMC-ChatbotService/internal/integrations/openai"
	twilioClient "github.com/m04kA/SMC-ChatbotService/internal/integrations/twilio"
	bookingsService "github.com/m04kA/SMC-ChatbotService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-ChatbotService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-ChatbotService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ChatbotService/internal/usecase/get_available_slots"
	handleMessageUC "github.com/m04kA/SMC-ChatbotService/internal/usecase/handle_message"
	"github.com/m04kA/SMC-ChatbotService/internal/worker/reminders"
	"github.com/m04kA/SMC-ChatbotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChatbotService/pkg/logger"
	"github.com/m04kA/SMC-ChatbotService/pkg/metrics"
	"github.com/m04kA/SMC-ChatbotService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ChatbotService/pkg/txmanager"
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

	log.Info("Starting SMC-ChatbotService...")
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

	// Подключаемся к Redis (сессии клиентов)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	aiClient := openaiClient.NewClient(
		cfg.OpenAI.BaseURL,
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		time.Duration(cfg.OpenAI.Timeout)*time.Second,
		log,
	)
	whatsappClient := twilioClient.NewClient(
		cfg.Twilio.BaseURL,
		cfg.Twilio.AccountSID,
		cfg.Twilio.AuthToken,
		cfg.Twilio.WhatsAppFrom,
		time.Duration(cfg.Twilio.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (OpenAI model=%s, Twilio from=%s)",
		cfg.OpenAI.Model, cfg.Twilio.WhatsAppFrom)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		businessRepository     *businessRepo.Repository
		configRepository       *configRepo.Repository
		workingHoursRepository *workingHoursRepo.Repository
		orderRepository        *orderRepo.Repository
		conversationRepository *conversationRepo.Repository
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

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		businessRepository = businessRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		workingHoursRepository = workingHoursRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		conversationRepository = conversationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		businessRepository = businessRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		workingHoursRepository = workingHoursRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		conversationRepository = conversationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	sessionRepository := sessionRepo.NewRepository(
		redisClient,
		time.Duration(cfg.Redis.SessionTTLHours)*time.Hour,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(
		workingHoursRepository,
		configRepository,
		businessRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		workingHoursRepository,
		configRepository,
		businessRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		workingHoursRepository,
		configRepository,
		log,
	)
	handleMessageUseCase := handleMessageUC.NewUseCase(
		createBookingUseCase,
		getAvailableSlotsUseCase,
		businessRepository,
		orderRepository,
		sessionRepository,
		conversationRepository,
		aiClient,
		log,
	)

	// Инициализируем handlers
	whatsappWebhook := whatsappWebhookHandler.NewHandler(handleMessageUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getCustomerOrders := getCustomerOrdersHandler.NewHandler(orderRepository, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessConfig := getBusinessConfigHandler.NewHandler(scheduleSvc, log)
	updateBusinessConfig := updateBusinessConfigHandler.NewHandler(scheduleSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	setWorkingHours := setWorkingHoursHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// WEBHOOK (вызывается Twilio, без авторизации)
	// ============================================================

	r.HandleFunc("/webhook/whatsapp", whatsappWebhook.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без авторизации)
	// ============================================================

	// Свободное время на дату
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Настройки бизнеса
	api.HandleFunc("/businesses/{businessId}/config",
		getBusinessConfig.Handle).Methods(http.MethodGet)

	// Рабочие часы на дату
	api.HandleFunc("/businesses/{businessId}/working-hours",
		getWorkingHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <admin_token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.AdminToken))

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID или reference
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса записи (completed, no_show)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/customers/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// История заказов клиента
	protected.HandleFunc("/customers/orders", getCustomerOrders.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом ---
	// Список записей бизнеса
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// Обновление настроек бизнеса
	protected.HandleFunc("/businesses/{businessId}/config", updateBusinessConfig.Handle).Methods(http.MethodPut)

	// Установка рабочих часов на дату
	protected.HandleFunc("/businesses/{businessId}/working-hours", setWorkingHours.Handle).Methods(http.MethodPut)

	// Запускаем диспетчер напоминаний (если включен)
	var remindersDispatcher *reminders.Dispatcher
	if cfg.Reminders.Enabled {
		location, err := time.LoadLocation(cfg.Reminders.Timezone)
		if err != nil {
			log.Fatal("Failed to load reminders timezone %q: %v", cfg.Reminders.Timezone, err)
		}

		remindersDispatcher = reminders.NewDispatcher(
			reminders.Config{
				LeadMinutes: cfg.Reminders.LeadMinutes,
				CronSpec:    cfg.Reminders.CronSpec,
				Location:    location,
			},
			bookingRepository,
			businessRepository,
			whatsappClient,
			realClock{},
			log,
		)
		if err := remindersDispatcher.Start(); err != nil {
			log.Fatal("Failed to start reminders dispatcher: %v", err)
		}
	}

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

	// Останавливаем напоминания
	if remindersDispatcher != nil {
		remindersDispatcher.Stop()
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

// realClock системное время для диспетчера напоминаний
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
