package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/anonto42/orion/backend/pkg/kvstore"
)

// OpenStore connects the key-value backend named by cfg.Driver and applies the key prefix.
func OpenStore(ctx context.Context, cfg StoreConfig) (kvstore.Store, error) {
	var (
		store kvstore.Store
		err   error
	)

	switch cfg.Driver {
	case "", "memory":
		store = kvstore.NewMemoryStore()
		log.Warn().Msg("Using in-memory store; data will not survive a restart.")
	case "postgres":
		if cfg.PostgresConnStr == "" {
			return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
		var db *gorm.DB
		if db, err = initPostgres(cfg.PostgresConnStr); err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if store, err = kvstore.NewPostgresStore(db); err != nil {
			return nil, err
		}
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable not set")
		}
		var client *mongo.Client
		if client, err = initMongo(ctx, cfg.MongoURI); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		store = kvstore.NewMongoStore(client, client.Database(cfg.MongoDatabase))
	case "redis":
		var client *redis.Client
		if client, err = initRedis(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		store = kvstore.NewRedisStore(client)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}

	return kvstore.Prefixed(store, cfg.KeyPrefix), nil
}

// initPostgres initializes the PostgreSQL database connection using GORM
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Info().Msg("Successfully connected to PostgreSQL!")
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Info().Msg("Successfully connected to MongoDB!")
	return client, nil
}

func initRedis(ctx context.Context, cfg StoreConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info().Str("addr", cfg.RedisURL).Msg("Successfully connected to Redis!")
	return client, nil
}
