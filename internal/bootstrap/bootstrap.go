// internal/bootstrap/bootstrap.go
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"time"

	"github.com/unclebandit/customer-segmentation/internal/config"
	"github.com/unclebandit/customer-segmentation/internal/db"
	"github.com/unclebandit/customer-segmentation/internal/pipeline"
	"github.com/unclebandit/customer-segmentation/internal/queue"
	"github.com/unclebandit/customer-segmentation/internal/repository"
	"github.com/unclebandit/customer-segmentation/internal/seed"
	"github.com/unclebandit/customer-segmentation/internal/service"
)

const (
	queueMaxRetries = 3
	queueBackoff    = 2 * time.Second
)

// App holds the wired segmentation service and the connections behind it
type App struct {
	Service *service.SegmentationService
	// AMQP is set when AMQP_URL is configured
	AMQP *queue.AMQPQueue

	closers []func() error
}

// Build picks a backend for every store from cfg, falling back to memory
// when a backend is not configured:
//
//	customers: MongoDB, then Postgres, then SEED_FILE in memory
//	models, runs: Postgres, then memory
//	model cache: Redis, then memory unless models live in Postgres
//	queue: RabbitMQ, then the in-process queue
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	var conn *sql.DB
	if cfg.DB.Enabled() {
		var err error
		conn, err = db.Open(cfg.DB)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, conn.Close)

		if err := db.Migrate(conn, cfg.DB.Name); err != nil {
			app.Close()
			return nil, err
		}
	} else {
		log.Println("⚠️ DB_HOST/DB_NAME not set, models and training runs are kept in memory")
	}

	customers, err := app.customers(ctx, cfg, conn)
	if err != nil {
		app.Close()
		return nil, err
	}

	var models repository.ModelRepositoryInterface = repository.NewModelRepositoryMemory()
	var runs repository.TrainingRunRepositoryInterface = repository.NewTrainingRunRepositoryMemory()
	if conn != nil {
		models = &repository.ModelRepository{DB: conn}
		runs = &repository.TrainingRunRepository{DB: conn}
	}
	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = app.redisCache(ctx, cfg.RedisAddr)
	}
	if cache == nil && conn == nil {
		cache = repository.NewMemoryCache()
	}
	if cache != nil {
		models = repository.NewCachedModelRepository(models, cache)
	} else {
		// the worker saves into the same Postgres, a process-local cache
		// would keep serving the model it replaced
		log.Println("⚠️ No Redis model cache, reading models straight from Postgres")
	}

	svc := &service.SegmentationService{
		Trainer:   pipeline.NewTrainPipeline(customers, models, cfg.Model),
		Predictor: pipeline.NewPredictionPipeline(models),
		Models:    models,
		Runs:      runs,
	}

	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, queueMaxRetries)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, q.Close)
		app.AMQP = q
		svc.Queue = q
		log.Println("✅ Connected to RabbitMQ")
	} else {
		q := queue.NewInMemoryQueue(queueMaxRetries, queueBackoff)
		if err := queue.StartTrainingSubscriber(q, svc); err != nil {
			app.Close()
			return nil, err
		}
		svc.Queue = q
	}

	app.Service = svc
	return app, nil
}

func (a *App) customers(ctx context.Context, cfg *config.Config, conn *sql.DB) (repository.CustomerRepositoryInterface, error) {
	switch {
	case cfg.MongoURL != "":
		repo, err := repository.NewMongoCustomerRepository(ctx, cfg.MongoURL, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return repo.Close(context.Background()) })
		log.Println("✅ Training data source: MongoDB", cfg.MongoDatabase+"."+cfg.MongoCollection)
		return repo, nil

	case conn != nil:
		log.Println("✅ Training data source: Postgres customers table")
		return &repository.CustomerRepository{DB: conn}, nil
	}

	mem := repository.NewCustomerRepositoryMemory()
	records, err := seed.LoadFile(cfg.SeedFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Println("⚠️ No training data source configured and", cfg.SeedFile, "not found")
	case err != nil:
		return nil, err
	default:
		mem.Add(records...)
		log.Printf("✅ Training data source: %d rows from %s\n", len(records), cfg.SeedFile)
	}
	return mem, nil
}

// redisCache returns nil when Redis cannot be reached
func (a *App) redisCache(ctx context.Context, addr string) repository.CacheRepository {
	rc := repository.NewRedisCache(addr)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.Println("⚠️ Redis unavailable:", err)
		rc.Close()
		return nil
	}

	a.closers = append(a.closers, rc.Close)
	log.Println("✅ Connected to Redis")
	return rc
}

// Close releases connections in reverse order of opening
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Println("⚠️ close:", err)
		}
	}
	a.closers = nil
}
