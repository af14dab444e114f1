package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pokerserver "github.com/FICHEKK/poker-server"
	"github.com/FICHEKK/poker-server/config"
	"github.com/FICHEKK/poker-server/dao"
	"github.com/FICHEKK/poker-server/mq"
	"github.com/FICHEKK/poker-server/transport"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	storage := newStorage(ctx, cfg, logger)
	cancel()
	defer storage.Close()

	casinoOptions := pokerserver.NewCasinoOptions()
	casinoOptions.StartingChips = cfg.StartingChips
	casinoOptions.DailyReward = cfg.DailyReward

	casino := pokerserver.NewCasino(casinoOptions, storage,
		pokerserver.WithCasinoLogger(logger.Named("casino")))

	server := transport.NewServer(casino, &transport.ServerOptions{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, logger.Named("transport"))

	tableOpts := []pokerserver.TableControllerOpt{
		pokerserver.WithStorage(storage),
		pokerserver.WithMessenger(server),
		pokerserver.WithLogger(logger.Named("table")),
	}

	if cfg.RabbitURL != "" {
		publisher, err := mq.NewRabbitPublisher(mq.Config{
			URL:      cfg.RabbitURL,
			Exchange: cfg.SettlementExchange,
			Durable:  true,
		})
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer publisher.Close()
		tableOpts = append(tableOpts, pokerserver.WithSettlementPublisher(publisher))
	}

	casino.SetTableControllerOpts(tableOpts...)
	createDefaultTables(casino, logger)

	mux := http.NewServeMux()
	server.Routes(mux)
	go server.Run()

	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}

	for _, title := range casino.TableTitles() {
		if err := casino.CloseTable(title); err != nil {
			logger.Error("failed to close table", zap.String("title", title), zap.Error(err))
		}
	}
}

func newLogger() *zap.Logger {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// newStorage wires Postgres when configured, with an optional Redis chip
// cache in front. Without a database URL the server runs fully in memory,
// which is only meant for local play.
func newStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) dao.DAO {
	if cfg.PostgresURL == "" {
		logger.Warn("POSTGRES_URL not set, using in-memory storage")
		return dao.NewMemoryDAO()
	}

	storage, err := dao.NewPgDAO(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	if cfg.RedisURL == "" {
		return storage
	}

	redisOptions, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("invalid REDIS_URL", zap.Error(err))
	}

	return dao.NewCachedDAO(storage, redis.NewClient(redisOptions), time.Hour)
}

func createDefaultTables(casino *pokerserver.Casino, logger *zap.Logger) {
	tables := []struct {
		title      string
		smallBlind int
		ranked     bool
	}{
		{"Rookie 25/50", 25, false},
		{"High Roller 500/1000", 500, false},
		{"Weekly Showdown", 100, true},
	}

	for _, t := range tables {
		options := pokerserver.NewTableControllerOptions()
		options.SmallBlind = t.smallBlind
		options.Ranked = t.ranked

		if _, err := casino.CreateTable(t.title, options); err != nil {
			logger.Error("failed to create table", zap.String("title", t.title), zap.Error(err))
		}
	}
}
