package main

import (
	"context"
	"flag"
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

	bookingSessionHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/booking_session"
	createAppointmentHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_business_hours"
	getCustomerAppointmentsHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_customer_appointments"
	getProviderAppointmentsHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_provider_appointments"
	getRelationshipHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_relationship"
	getUserAppointmentsHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_user_appointments"
	updateAppointmentHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/update_appointment_status"
	updateBusinessHoursHandler "github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/update_business_hours"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/config"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/cache/bookingsession"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/slotlock"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/memory"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/integrations/kafkapublisher"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/integrations/userservice"
	appointmentsService "github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments"
	businessHoursService "github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/businesshours"
	identityService "github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/identity"
	relationshipsService "github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/relationships"
	bookingSessionUC "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/booking_session"
	createAppointmentUC "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/get_available_slots"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/metrics"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/redislock"
)

func main() {
	configFlag := flag.String("config", "", "path to the TOML configuration file")
	flag.Parse()

	configPath := config.Path(*configFlag)
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewWithOptions(cfg.Logs.File, cfg.Logs.Level, logger.Options{
		MaxSizeMB:  cfg.Logs.MaxSizeMB,
		MaxBackups: cfg.Logs.MaxBackups,
		MaxAgeDays: cfg.Logs.MaxAgeDays,
		Compress:   cfg.Logs.Compress,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting beauty booking service...")
	log.Info("Configuration loaded from %s (storage=%s serialization=%s)",
		configPath, cfg.Storage.Driver, cfg.Booking.Serialization)

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx := context.Background()

	st, err := openStores(ctx, cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer st.close()

	if cfg.Identity.Source == config.IdentitySourceHTTP {
		st.profiles = userservice.NewClient(cfg.Identity.URL, time.Duration(cfg.Identity.Timeout)*time.Second, log)
		log.Info("Profiles are read from the user service at %s", cfg.Identity.URL)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  time.Duration(cfg.Redis.DialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.Redis.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Redis.WriteTimeout) * time.Second,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)
	}

	// Проверка пересечений и вставка под одной блокировкой на мастера и день
	var inner slotlock.Locker
	switch cfg.Booking.Serialization {
	case config.SerializationTransaction:
		inner = st.txManager
	case config.SerializationRedis:
		inner = redislock.New(redisClient, redislock.Options{
			Prefix:   "slotlock:",
			TTL:      time.Duration(cfg.Booking.LockTTLSeconds) * time.Second,
			WaitTime: time.Duration(cfg.Booking.LockWaitSeconds) * time.Second,
		})
	case config.SerializationLocal:
		inner = memory.NewLocker()
	default:
		log.Warn("Booking serialization disabled, concurrent bookings of one slot may both succeed")
		inner = slotlock.Unserialized{}
	}
	locker := slotlock.Normalize(inner, log)

	var sessionStore bookingSessionUC.SessionStore
	if redisClient != nil {
		sessionStore = bookingsession.NewRedisStore(redisClient)
	} else {
		sessionStore = bookingsession.NewMemoryStore()
	}

	// События: история мастер-клиент и опционально Kafka для внешних потребителей
	dispatcher := events.NewDispatcher(log)

	relationshipsSvc := relationshipsService.NewService(st.relationships, log)
	dispatcher.Register("relationships", relationshipsSvc)

	if cfg.Kafka.Enabled {
		publisher := kafkapublisher.NewPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
			log,
		)
		defer publisher.Close()
		dispatcher.Register("kafka", publisher)
		log.Info("Kafka publishing enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Сервисы
	identitySvc := identityService.NewService(
		st.profiles,
		time.Duration(cfg.Booking.IdentityTimeoutSeconds)*time.Second,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		st.appointments,
		st.catalog,
		locker,
		dispatcher,
		metricsCollector,
		log,
	)
	businessHoursSvc := businessHoursService.NewService(st.hours, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		st.appointments,
		st.hours,
		st.catalog,
		cfg.Booking.SlotGranularityMinutes,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		st.appointments,
		st.catalog,
		st.profiles,
		locker,
		dispatcher,
		metricsCollector,
		cfg.Booking.CleaningTimeMinutes,
		log,
	)
	bookingSessionUseCase := bookingSessionUC.NewUseCase(
		sessionStore,
		getAvailableSlotsUseCase,
		createAppointmentUseCase,
		st.profiles,
		st.catalog,
		time.Duration(cfg.Booking.SessionTTLMinutes)*time.Minute,
		log,
	)

	// Хендлеры
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(businessHoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(businessHoursSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getProviderAppointments := getProviderAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getRelationship := getRelationshipHandler.NewHandler(relationshipsSvc, log)
	bookingSession := bookingSessionHandler.NewHandler(bookingSessionUseCase, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		api.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (%d req/min, burst %d)", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	api.Use(middleware.Auth(identitySvc, log))

	// Публичные маршруты
	api.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// Маршруты, требующие авторизации
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireAuth)

	protected.HandleFunc("/providers/{providerId}/business-hours", updateBusinessHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/appointments", getProviderAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/customers/{customerId}/relationship", getRelationship.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	protected.HandleFunc("/booking-sessions", bookingSession.Start).Methods(http.MethodPost)
	protected.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Cancel).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-sessions/{sessionId}/services", bookingSession.SelectServices).Methods(http.MethodPut)
	protected.HandleFunc("/booking-sessions/{sessionId}/slot", bookingSession.SelectSlot).Methods(http.MethodPut)
	protected.HandleFunc("/booking-sessions/{sessionId}/slots", bookingSession.Slots).Methods(http.MethodGet)
	protected.HandleFunc("/booking-sessions/{sessionId}/confirm", bookingSession.Confirm).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
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
