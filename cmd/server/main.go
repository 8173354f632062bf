package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/application/commands"
	"github.com/yuzvak/stockdecay-service/internal/application/ports"
	"github.com/yuzvak/stockdecay-service/internal/application/use_cases"
	"github.com/yuzvak/stockdecay-service/internal/config"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/handlers"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/server"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/messaging/kafka"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/persistence/postgres"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/persistence/redis"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/scheduler"
	"github.com/yuzvak/stockdecay-service/internal/pkg/clock"
	"github.com/yuzvak/stockdecay-service/internal/pkg/generator"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON configuration file (environment only when empty)")
	seedItems := flag.Int("seed-items", 0, "Generate this many random items when the inventory is empty")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("Starting stock decay service")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err, "driver", cfg.Database.Driver)
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db.GetDB(), log.WithField("component", "migrations")); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	redisConn, err := redis.NewConnection(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisConn.Close()

	monitoring.NewDBMetricsCollector(db.GetDB()).StartCollecting(ctx, 30*time.Second)

	var publisher ports.EventPublisher = kafka.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = kafka.NewPublisher(cfg.Kafka, log.WithField("component", "kafka"))
		log.Info("Publishing day events", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}
	defer publisher.Close()

	clk := clock.NewRealClock()
	itemRepo := postgres.NewItemRepository(db)
	cache := redis.NewCache(redisConn, log.WithField("component", "cache"))
	metrics := monitoring.NewSimulationRecorder()
	ids := generator.NewItemGenerator()

	if *seedItems > 0 {
		if err := seedInventory(ctx, itemRepo, ids, clk, *seedItems, log); err != nil {
			log.Fatal("Failed to seed inventory", "error", err)
		}
	}

	advanceUseCase := use_cases.NewAdvanceDayUseCase(itemRepo, cache, publisher, metrics, clk,
		log.WithField("component", "advance"), cfg.Redis.LockTTL.Std())
	inventoryUseCase := use_cases.NewInventoryUseCase(itemRepo, cache, metrics, log, cfg.Redis.SnapshotTTL.Std())

	addItemHandler := commands.NewAddItemHandler(itemRepo, cache, metrics, ids, clk, log)
	advanceHandler := commands.NewAdvanceDayHandler(advanceUseCase, log)

	httpServer := server.NewServer(cfg.Server, server.Handlers{
		Health:     handlers.NewHealthHandler(db.GetDB(), redisConn.GetClient(), log),
		Items:      handlers.NewItemHandler(addItemHandler, inventoryUseCase, log),
		Simulation: handlers.NewSimulationHandler(advanceHandler, inventoryUseCase, log),
	}, log)

	var dayScheduler *scheduler.DayScheduler
	if cfg.Scheduler.Enabled {
		dayScheduler = scheduler.NewDayScheduler(advanceUseCase, log.WithField("component", "scheduler"), cfg.Scheduler.Interval.Std())
		go dayScheduler.Start(ctx)
	}

	if state, err := inventoryUseCase.GetState(ctx); err == nil {
		metrics.UpdateInventory(state.Summary)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		<-sigChan

		log.Info("Shutting down server...")
		if dayScheduler != nil {
			dayScheduler.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		stop()
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed", "error", err)
	}

	<-serverDone
	log.Info("Server stopped")
}

func seedInventory(ctx context.Context, repo ports.ItemRepository, gen *generator.ItemGenerator, clk clock.Clock, count int, log *logger.Logger) error {
	existing, err := repo.ListItems(ctx, 1, 0)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("Inventory not empty, skipping seed")
		return nil
	}

	now := clk.Now()
	for _, item := range gen.GenerateItems(count) {
		item.CreatedAt = now
		item.UpdatedAt = now
		if err := repo.CreateItem(ctx, item); err != nil {
			return err
		}
	}

	log.Info("Seeded inventory", "items", count)
	return nil
}
