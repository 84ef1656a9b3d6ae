package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/common/clock"
	"github.com/KirkDiggler/secretmafia/internal/common/uuid"
	"github.com/KirkDiggler/secretmafia/internal/device"
	"github.com/KirkDiggler/secretmafia/internal/handlers/api"
	"github.com/KirkDiggler/secretmafia/internal/handlers/discord"
	"github.com/KirkDiggler/secretmafia/internal/random"
	"github.com/KirkDiggler/secretmafia/internal/repositories/feed"
	"github.com/KirkDiggler/secretmafia/internal/repositories/gate"
	historyRepo "github.com/KirkDiggler/secretmafia/internal/repositories/history"
	"github.com/KirkDiggler/secretmafia/internal/repositories/room"
	"github.com/KirkDiggler/secretmafia/internal/repositories/slot"
	gameService "github.com/KirkDiggler/secretmafia/internal/services/game"
	historyService "github.com/KirkDiggler/secretmafia/internal/services/history"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/KirkDiggler/secretmafia/internal/services/roles"
	"github.com/KirkDiggler/secretmafia/internal/services/session"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	logger := newLogger(getEnv("LOG_LEVEL", "info"))
	defer func() { _ = logger.Sync() }()

	// Initialize Redis client
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		logger.Fatal("Invalid REDIS_DB", zap.Error(err))
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize repositories
	roomRepo, err := room.NewRedis(&room.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal("Failed to create room repository", zap.Error(err))
	}

	slotRepo, err := slot.NewRedis(&slot.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal("Failed to create slot repository", zap.Error(err))
	}

	gateRepo, err := gate.NewRedis(&gate.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal("Failed to create gate repository", zap.Error(err))
	}

	historyStore, err := historyRepo.NewRedis(&historyRepo.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal("Failed to create history repository", zap.Error(err))
	}

	subscriber, err := feed.NewRedis(&feed.Config{RedisClient: redisClient, Logger: logger})
	if err != nil {
		logger.Fatal("Failed to create change feed", zap.Error(err))
	}

	// Initialize services
	randomSource := random.New(&random.Config{})
	clk := clock.New()
	uuidGen := uuid.New()

	roleSvc, err := roles.New(&roles.Config{Random: randomSource})
	if err != nil {
		logger.Fatal("Failed to create role service", zap.Error(err))
	}

	sessionSvc, err := session.New(&session.Config{
		RoomRepo:      roomRepo,
		SlotRepo:      slotRepo,
		GateRepo:      gateRepo,
		Random:        randomSource,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Failed to create session service", zap.Error(err))
	}

	gameSvc, err := gameService.New(&gameService.Config{
		RoomRepo:    roomRepo,
		SlotRepo:    slotRepo,
		GateRepo:    gateRepo,
		RoleService: roleSvc,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("Failed to create game service", zap.Error(err))
	}

	historySvc, err := historyService.New(&historyService.Config{
		HistoryRepo:   historyStore,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Failed to create history service", zap.Error(err))
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{Random: randomSource})
	if err != nil {
		logger.Fatal("Failed to create messaging service", zap.Error(err))
	}

	// Initialize the device-facing API
	if getEnv("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler, err := api.New(&api.Config{
		SessionService:     sessionSvc,
		GameService:        gameSvc,
		HistoryService:     historySvc,
		Messaging:          messagingSvc,
		Subscriber:         subscriber,
		UUIDGenerator:      uuidGen,
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "")),
		PublicURL:          getEnv("PUBLIC_URL", ""),
		HidePhonesDuration: device.DefaultHidePhonesDuration,
		Logger:             logger,
	})
	if err != nil {
		logger.Fatal("Failed to create API handler", zap.Error(err))
	}

	server := &http.Server{
		Addr:              getEnv("HTTP_ADDR", ":8080"),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// The Discord surface is optional
	var bot *discord.Bot
	if token := getEnv("DISCORD_TOKEN", ""); token != "" {
		bot, err = discord.New(&discord.Config{
			Token:          token,
			ApplicationID:  getEnv("APPLICATION_ID", ""),
			GuildID:        getEnv("GUILD_ID", ""),
			SessionService: sessionSvc,
			GameService:    gameSvc,
			HistoryService: historySvc,
			Messaging:      messagingSvc,
			Logger:         logger,
		})
		if err != nil {
			logger.Fatal("Failed to create Discord bot", zap.Error(err))
		}

		if err := bot.Start(); err != nil {
			logger.Fatal("Failed to start Discord bot", zap.Error(err))
		}
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if bot != nil {
		if err := bot.Stop(); err != nil {
			logger.Warn("Error stopping Discord bot", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Error shutting down HTTP server", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Warn("Error closing Redis client", zap.Error(err))
	}

	logger.Info("Server has been shut down")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// splitList parses a comma separated environment value
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
