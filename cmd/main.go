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

	deleteCapacityOverrideHandler "github.com/m04kA/SMC-RoomAvailability/internal/api/handlers/delete_capacity_override"
	getCapacityOverridesHandler "github.com/m04kA/SMC-RoomAvailability/internal/api/handlers/get_capacity_overrides"
	"github.com/m04kA/SMC-RoomAvailability/internal/api/handlers/health"
	searchAvailabilityHandler "github.com/m04kA/SMC-RoomAvailability/internal/api/handlers/search_availability"
	updateCapacityOverrideHandler "github.com/m04kA/SMC-RoomAvailability/internal/api/handlers/update_capacity_override"
	"github.com/m04kA/SMC-RoomAvailability/internal/api/middleware"
	"github.com/m04kA/SMC-RoomAvailability/internal/config"
	availabilityCache "github.com/m04kA/SMC-RoomAvailability/internal/infra/cache/availability"
	capacityRepo "github.com/m04kA/SMC-RoomAvailability/internal/infra/storage/capacity"
	pmsClient "github.com/m04kA/SMC-RoomAvailability/internal/integrations/pms"
	capacityService "github.com/m04kA/SMC-RoomAvailability/internal/service/capacity"
	tokenService "github.com/m04kA/SMC-RoomAvailability/internal/service/token"
	resolveAvailabilityUC "github.com/m04kA/SMC-RoomAvailability/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-RoomAvailability/pkg/logger"
	"github.com/m04kA/SMC-RoomAvailability/pkg/metrics"
)

const redisPingTimeout = 2 * time.Second

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

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

	log.Info("Starting SMC-RoomAvailability...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены). Методы Metrics безопасны для nil
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Клиент PMS
	pms := pmsClient.NewClient(
		cfg.PMS.BaseURL,
		cfg.PMS.ClientID,
		cfg.PMS.ClientSecret,
		time.Duration(cfg.PMS.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	log.Info("PMS client initialized (url=%s, timeout=%ds)", cfg.PMS.BaseURL, cfg.PMS.Timeout)

	// Кэш отчетов в Redis (опционально, при недоступности работаем без него)
	var availabilityClient resolveAvailabilityUC.AvailabilityClient = pms
	if cfg.Redis.Enabled {
		rdb := connectRedis(cfg.Redis, log)
		if rdb != nil {
			defer rdb.Close()
			availabilityClient = availabilityCache.NewCachedClient(
				pms,
				rdb,
				time.Duration(cfg.Redis.TTL)*time.Second,
				cfg.Redis.Prefix,
				metricsCollector,
				log,
			)
			log.Info("Availability report cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// Токены PMS
	tokens := tokenService.NewProvider(pms, tokenService.RealClock{}, metricsCollector, log)

	// Эвристика вместимости
	classifier := capacityService.NewClassifier(toCapacityRules(cfg.Capacity.Rules), cfg.Capacity.DefaultCapacity)

	// Ручная вместимость в Postgres (опционально)
	var (
		overrides       resolveAvailabilityUC.CapacityOverrides
		overrideService *capacityService.OverrideService
	)
	if cfg.Database.Enabled {
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

		overrideService = capacityService.NewOverrideService(
			capacityRepo.NewRepository(db),
			time.Duration(cfg.Capacity.OverrideCacheTTL)*time.Second,
			log,
		)
		defer overrideService.Close()
		overrides = overrideService
	}

	// Инициализируем use case
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		tokens,
		availabilityClient,
		classifier,
		overrides,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	searchAvailability := searchAvailabilityHandler.NewHandler(resolveAvailabilityUseCase, cfg.Server.MaxStayNights, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/consulta", searchAvailability.Handle).Methods(http.MethodPost)

	// Старый адрес для существующих клиентов
	r.HandleFunc("/consulta", searchAvailability.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token, только при включенной БД)
	// ============================================================

	if overrideService != nil {
		getOverrides := getCapacityOverridesHandler.NewHandler(overrideService, log)
		updateOverride := updateCapacityOverrideHandler.NewHandler(overrideService, log)
		deleteOverride := deleteCapacityOverrideHandler.NewHandler(overrideService, log)

		admin := api.PathPrefix("/capacity-overrides").Subrouter()
		admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))

		admin.HandleFunc("", getOverrides.Handle).Methods(http.MethodGet)
		admin.HandleFunc("/{roomCode}", updateOverride.Handle).Methods(http.MethodPut)
		admin.HandleFunc("/{roomCode}", deleteOverride.Handle).Methods(http.MethodDelete)
		log.Info("Capacity override admin routes registered")
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

// connectRedis возвращает nil, если Redis недоступен при старте
func connectRedis(cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable at %s, continuing without report cache: %v", cfg.Addr, err)
		_ = rdb.Close()
		return nil
	}

	return rdb
}

func toCapacityRules(rules []config.CapacityRule) []capacityService.Rule {
	result := make([]capacityService.Rule, 0, len(rules))
	for _, rule := range rules {
		result = append(result, capacityService.Rule{
			Capacity:     rule.Capacity,
			CodeContains: rule.CodeContains,
			NameContains: rule.NameContains,
		})
	}
	return result
}
