package main

import (
	"context"
	"log"

	"chatroom/config"
	"chatroom/internal/commands"
	"chatroom/internal/events"
	"chatroom/internal/handler"
	"chatroom/internal/redis"
	"chatroom/internal/repository"
	"chatroom/internal/server"
	"chatroom/internal/services"
	"chatroom/internal/storage"
	"chatroom/internal/websocket"
	"chatroom/pkg/database"
	"chatroom/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *goredis.Client
	var checks []repository.HealthChecker
	if cfg.UsesRedis() {
		redisClient = redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		checks = append(checks, redis.HealthCheck{Client: redisClient})
	}

	repo, closeRepo, err := openRepository(ctx, cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closeRepo()
	if hc, ok := repo.(repository.HealthChecker); ok {
		checks = append(checks, hc)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	var broadcaster events.Broadcaster
	switch cfg.Broadcaster {
	case config.BroadcasterRedis:
		broadcaster = events.NewBrokerBroadcaster(redis.NewPublisher(redisClient, cfg.RedisKeyPrefix))
		bridge := websocket.NewRedisBridge(redis.NewSubscriber(redisClient, cfg.RedisKeyPrefix), hub)
		go func() {
			if err := bridge.Run(ctx); err != nil {
				l.Errorf("redis bridge stopped: %s", err)
			}
		}()
	default:
		broadcaster = websocket.NewLocalBroadcaster(hub)
	}

	var archiver services.Archiver
	if cfg.ArchiveEnabled() {
		roomArchiver, err := storage.NewRoomArchiver(ctx, storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to configure s3 archiver: %v", err)
		}
		archiver = roomArchiver
	}

	locks := services.NewRoomLocker()
	bus := commands.NewBus()
	roomService := services.NewRoomService(repo, locks, archiver, l)
	messageService := services.NewMessageService(repo, broadcaster, locks, l, bus)
	historyService := services.NewHistoryService(repo)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Room:      handler.NewRoomHandler(roomService, historyService),
		WebSocket: websocket.NewHandler(hub, handler.NewChatHandler(messageService.Bus()), cfg.AllowedOrigins, l),
	}, checks...)

	l.Infof("store=%s broadcaster=%s", cfg.StoreBackend, cfg.Broadcaster)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func openRepository(ctx context.Context, cfg *config.Config, redisClient *goredis.Client) (repository.RoomRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		return repository.NewRedisRoomRepository(redisClient, cfg.RedisKeyPrefix), func() {}, nil
	case config.StoreBadger:
		db, err := repository.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewBadgerRoomRepository(db), func() { _ = db.Close() }, nil
	case config.StorePostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.InitSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPostgresRoomRepository(pool), pool.Close, nil
	default:
		return repository.NewMemoryRoomRepository(), func() {}, nil
	}
}
