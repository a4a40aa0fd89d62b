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

	getMemberBalanceHandler "github.com/m04kA/SMC-TimetableService/internal/api/handlers/get_member_balance"
	getTimetableHandler "github.com/m04kA/SMC-TimetableService/internal/api/handlers/get_timetable"
	renderTimetableHandler "github.com/m04kA/SMC-TimetableService/internal/api/handlers/render_timetable"
	"github.com/m04kA/SMC-TimetableService/internal/api/middleware"
	"github.com/m04kA/SMC-TimetableService/internal/config"
	balanceCache "github.com/m04kA/SMC-TimetableService/internal/infra/cache/balance"
	balanceRepo "github.com/m04kA/SMC-TimetableService/internal/infra/storage/balance"
	reservationRepo "github.com/m04kA/SMC-TimetableService/internal/infra/storage/reservation"
	membersService "github.com/m04kA/SMC-TimetableService/internal/service/members"
	getTimetableUC "github.com/m04kA/SMC-TimetableService/internal/usecase/get_timetable"
	"github.com/m04kA/SMC-TimetableService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimetableService/pkg/logger"
	"github.com/m04kA/SMC-TimetableService/pkg/metrics"
)

// balanceSource источник балансов для use case и карточки участника (БД или кэш поверх неё)
type balanceSource interface {
	GetLatestByMemberIDs(ctx context.Context, memberIDs []int64) (map[int64]int64, error)
	GetLatestByMemberID(ctx context.Context, memberID int64) (int64, error)
}

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

	log.Info("Starting SMC-TimetableService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Timetable.Location()
	if err != nil {
		log.Fatal("Invalid time zone %q: %v", cfg.Timetable.TimeZone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopBackgroundCh := make(chan struct{})

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
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopBackgroundCh)
		log.Info("Database metrics collection started")
	}

	reservationRepository := reservationRepo.NewRepository(executor)

	var balances balanceSource = balanceRepo.NewRepository(executor)

	// Кэш снимков баланса в Redis (если включен)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен: при недоступном Redis запросы идут в БД
			log.Warn("Redis is unavailable at %s, balance cache will fall back to database: %v", cfg.Redis.Addr, err)
		}
		cancel()

		balances = balanceCache.NewRepository(balances, redisClient, cfg.Redis.TTL(), log)
		log.Info("Balance cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Инициализируем сервисы
	memberSvc := membersService.NewService(balances, cfg.Timetable.CurrencySuffix, log)

	// Инициализируем use cases
	var recorder getTimetableUC.MetricsRecorder
	if cfg.Metrics.Enabled {
		recorder = metricsCollector
	}

	getTimetableUseCase := getTimetableUC.NewUseCase(
		reservationRepository,
		balances,
		getTimetableUC.Options{
			Grid:           cfg.Grid.ToDomain(),
			Location:       location,
			CurrencySuffix: cfg.Timetable.CurrencySuffix,
		},
		recorder,
		log,
	)

	// Инициализируем handlers
	getTimetable := getTimetableHandler.NewHandler(getTimetableUseCase, log)
	renderTimetable := renderTimetableHandler.NewHandler(getTimetableUseCase, log)
	getMemberBalance := getMemberBalanceHandler.NewHandler(memberSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (без ограничения частоты)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Публичные маршруты с ограничением частоты
	public := r.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		trustedProxies, err := cfg.RateLimit.TrustedProxyPrefixes()
		if err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, trustedProxies, log)
		go limiter.Run(time.Minute, stopBackgroundCh)
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d, trusted_proxies=%d)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, len(trustedProxies))
	}

	// Страница расписания
	public.HandleFunc("/timetable", renderTimetable.Handle).Methods(http.MethodGet)

	// API prefix
	api := public.PathPrefix("/api/v1").Subrouter()

	// Раскладка расписания на дату
	api.HandleFunc("/timetable", getTimetable.Handle).Methods(http.MethodGet)

	// Карточка участника (клик по брони)
	api.HandleFunc("/members/{memberId}/balance", getMemberBalance.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORS.AllowedOrigins)(r),
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

	// Останавливаем фоновые задачи (сбор метрик пула, очистка rate limiter)
	close(stopBackgroundCh)

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
