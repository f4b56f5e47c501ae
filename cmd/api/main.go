package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	stores, audit, err := buildStores(cfg, zlog)
	if err != nil {
		zlog.Fatal("storage unavailable", zap.Error(err))
	}

	m := metrics.New("barber-booking")

	sinks := buildSinks(cfg, zlog, audit)
	sinks = append(sinks, catalog.NewRatingAggregator(stores.Catalog, zlog))
	dispatcher := events.NewDispatcher(zlog, m, cfg.EventBuffer, sinks...)

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:  cfg,
		Log:     zlog,
		Metrics: m,
		Stores:  stores,
		Events:  dispatcher,
		Clock:   timezone.NewClock(timezone.Location(cfg.ShopTimezone)),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("storage", cfg.StorageDriver),
			zap.Strings("sinks", cfg.Sinks()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		zlog.Error("event dispatcher shutdown", zap.Error(err))
	}
}

// buildStores returns the persistence ports and the event log writer for
// the configured driver.
func buildStores(cfg *config.Config, zlog *zap.Logger) (routes.Stores, events.EventLogStore, error) {
	if cfg.StorageDriver == config.DriverMemory {
		store := memory.NewStore()
		seedMemory(store, cfg.DefaultBarberID)
		zlog.Warn("using in-memory storage; data is lost on restart")
		return routes.Stores{
			Calendar:  store,
			Ledger:    store,
			Ratings:   store,
			Catalog:   store,
			EventLogs: store,
		}, store, nil
	}

	db, err := dbpkg.NewDB(cfg, zlog)
	if err != nil {
		return routes.Stores{}, nil, err
	}

	eventLogs := infraRepo.NewEventLogGormRepository(db)
	return routes.Stores{
		Calendar:  infraRepo.NewCalendarGormRepository(db),
		Ledger:    infraRepo.NewBookingGormRepository(db, cfg.LockTimeout()),
		Ratings:   infraRepo.NewRatingGormRepository(db),
		Catalog:   infraRepo.NewCatalogGormRepository(db),
		EventLogs: eventLogs,
	}, eventLogs, nil
}

func buildSinks(cfg *config.Config, zlog *zap.Logger, audit events.EventLogStore) []events.Sink {
	var sinks []events.Sink
	for _, name := range cfg.Sinks() {
		switch name {
		case "log":
			sinks = append(sinks, events.NewLogSink(zlog))
		case "audit":
			sinks = append(sinks, events.NewAuditSink(audit))
		case "redis":
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			sinks = append(sinks, events.NewRedisSink(client, cfg.RedisStream, 10000))
		case "kafka":
			if len(cfg.Brokers()) == 0 {
				zlog.Warn("kafka sink requested without KAFKA_BROKERS; skipping")
				continue
			}
			sinks = append(sinks, events.NewKafkaSink(events.NewKafkaWriter(cfg.Brokers())))
		}
	}
	return sinks
}

// seedMemory gives the in-memory driver a usable shop: two services and a
// Monday to Saturday week.
func seedMemory(store *memory.Store, barberID uint) {
	store.SaveService(&models.Service{
		Name:        "Corte",
		DurationMin: 30,
		Price:       decimal.RequireFromString("45.00"),
		Active:      true,
	})
	store.SaveService(&models.Service{
		Name:        "Corte + Barba",
		DurationMin: 60,
		Price:       decimal.RequireFromString("70.00"),
		Active:      true,
	})

	week := make([]models.WorkingHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		wh := models.WorkingHours{BarberID: barberID, Weekday: wd}
		if wd != int(time.Sunday) {
			wh.Active = true
			wh.StartTime = "09:00"
			wh.EndTime = "18:00"
		}
		week = append(week, wh)
	}
	_ = store.ReplaceWorkingHours(context.Background(), barberID, week)
}
