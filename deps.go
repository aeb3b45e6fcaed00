package main

import (
	"context"
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-qlearn/config"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/lock"
	logger "github.com/beka-birhanu/vinom-qlearn/infrastruture/log"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/repo"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/store"
	"github.com/beka-birhanu/vinom-qlearn/service"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies shared by the commands
var (
	cfg          config.Config
	appLogger    i.Logger
	redisClient  *redis.Client
	mongoClient  *mongo.Client
	qtableStore  i.QTableStore
	trainLocker  i.Locker
	runRepo      i.RunRepo
	runRecorder  i.Recorder
	trainer      *service.Trainer
	agentService *service.Agent
)

func initAppLogger() {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMongo(ctx context.Context) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI())
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

// initBackend wires the Q-table store, the training lock and the run history
// for the selected backend. Redis gets a distributed lock; the other backends
// assume a single training process.
func initBackend(ctx context.Context, backend string) {
	var err error
	switch backend {
	case config.BackendMemory:
		qtableStore = store.NewMemory()
		trainLocker = lock.NewLocalLocker()
		runRepo = repo.NewMemoryRunRepo()
	case config.BackendRedis:
		initRedis(ctx)
		qtableStore, err = store.NewRedis(redisClient, cfg.RedisPrefix)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Creating redis store: %v", err))
			os.Exit(1)
		}
		trainLocker, err = lock.NewRedisLocker(redisClient, cfg.TrainLockTTL)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Creating redis locker: %v", err))
			os.Exit(1)
		}
		runRepo = repo.NewMemoryRunRepo()
	case config.BackendMongo:
		initMongo(ctx)
		qtableStore = store.NewMongo(mongoClient, cfg.DBName)
		trainLocker = lock.NewLocalLocker()
		runRepo = repo.NewRunRepo(mongoClient, cfg.DBName, "runs")
	default:
		appLogger.Error(fmt.Sprintf("Unknown store backend %q", backend))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Q-table store initialized: %s", backend))
}

func closeBackend(ctx context.Context) {
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(ctx)
	}
}

func initTrainer() {
	var err error
	trainer, err = service.NewTrainer(&service.TrainerConfig{
		Store:    qtableStore,
		Locker:   trainLocker,
		Runs:     runRepo,
		Recorder: runRecorder,
		Logger:   newLogger("TRAINER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating trainer: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Trainer initialized")
}

func initAgent() {
	var err error
	agentService, err = service.NewAgent(nil, qtableStore, newLogger("AGENT", config.ColorPurple))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating agent: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Agent initialized")
}
