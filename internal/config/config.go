// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
)

// Config is loaded once at startup, after godotenv has populated the
// environment from .env.
type Config struct {
	Host string
	Port string

	MongoURL        string
	MongoURLKey     string
	MongoDatabase   string
	MongoCollection string

	DB DBConfig

	RedisAddr string
	AMQPURL   string

	TemplateDir string
	StaticDir   string
	SeedFile    string

	Model ModelConfig

	TrainRatePerMinute int
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// Enabled reports whether enough settings exist to reach Postgres.
func (c DBConfig) Enabled() bool {
	return c.Host != "" && c.Name != ""
}

// ModelConfig drives the training pipeline. Clusters <= 0 selects k with
// the elbow method over [2, MaxClusters].
type ModelConfig struct {
	Clusters    int
	MaxClusters int
	MaxIter     int
	NInit       int
	Seed        int64
}

func Load() *Config {
	return &Config{
		Host: getEnv("APP_HOST", "127.0.0.1"),
		Port: getEnv("APP_PORT", "8080"),

		MongoURL:        os.Getenv("MONGODB_URL"),
		MongoURLKey:     os.Getenv("MONGODB_URL_KEY"),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "customer_segmentation"),
		MongoCollection: getEnv("MONGODB_COLLECTION", "customers"),

		DB: DBConfig{
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
		},

		RedisAddr: os.Getenv("REDIS_ADDR"),
		AMQPURL:   os.Getenv("AMQP_URL"),

		TemplateDir: getEnv("TEMPLATE_DIR", "templates"),
		StaticDir:   getEnv("STATIC_DIR", "static"),
		SeedFile:    getEnv("SEED_FILE", "seed/customers.csv"),

		Model: ModelConfig{
			Clusters:    getEnvInt("MODEL_CLUSTERS", 0),
			MaxClusters: getEnvInt("MODEL_MAX_CLUSTERS", 10),
			MaxIter:     getEnvInt("MODEL_MAX_ITER", 300),
			NInit:       getEnvInt("MODEL_N_INIT", 10),
			Seed:        int64(getEnvInt("MODEL_SEED", 42)),
		},

		TrainRatePerMinute: getEnvInt("TRAIN_RATE_PER_MIN", 5),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
