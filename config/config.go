package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const (
	OrderEventsTopic  = "order-events"
	ReviewEventsTopic = "review-events"
)

type Config struct {
	AppEnv   string
	LogLevel string
	// HTTPPort is the public port of the gateway.
	HTTPPort int

	StorefrontPort int
	RatePort       int
	AnalyticsPort  int
	TrackerPort    int

	// PublicBaseURL is encoded into order tracking QR codes.
	PublicBaseURL string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisAddr   string
	KafkaBroker string

	OrderTopic  string
	ReviewTopic string

	// TrackerGroup is the consumer group shared by tracker replicas.
	TrackerGroup string

	CatalogCacheTTL   time.Duration
	ReviewMarkerTTL   time.Duration
	TimelineTTL       time.Duration
	ThinkingMin       time.Duration
	ThinkingMax       time.Duration
	AssistantMaxUnits int
	// SessionIdleTTL is how long a storefront session may go unused before
	// it is evicted.
	SessionIdleTTL time.Duration
	// ConfirmPolicy is "first_bestseller" or "last_suggestion".
	ConfirmPolicy string

	StorefrontSvcURL string
	RateSvcURL       string
	AnalyticsSvcURL  string
}

func Load() Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		StorefrontPort: getEnvInt("STOREFRONT_PORT", 8081),
		RatePort:       getEnvInt("RATE_PORT", 8082),
		AnalyticsPort:  getEnvInt("ANALYTICS_PORT", 8083),
		TrackerPort:    getEnvInt("TRACKER_PORT", 8084),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "foodcourt"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		RedisAddr:   getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),

		OrderTopic:  getEnv("KAFKA_ORDER_TOPIC", OrderEventsTopic),
		ReviewTopic: getEnv("KAFKA_REVIEW_TOPIC", ReviewEventsTopic),

		TrackerGroup: getEnv("KAFKA_TRACKER_GROUP", "tracker-svc"),

		CatalogCacheTTL:   getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		ReviewMarkerTTL:   getEnvDuration("REVIEW_MARKER_TTL", 24*time.Hour),
		TimelineTTL:       getEnvDuration("ORDER_TIMELINE_TTL", 30*24*time.Hour),
		ThinkingMin:       getEnvDuration("ASSISTANT_THINKING_MIN", 800*time.Millisecond),
		ThinkingMax:       getEnvDuration("ASSISTANT_THINKING_MAX", 1500*time.Millisecond),
		AssistantMaxUnits: getEnvInt("ASSISTANT_MAX_QUANTITY", 20),
		SessionIdleTTL:    getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		ConfirmPolicy:     getEnv("ASSISTANT_CONFIRM_POLICY", "first_bestseller"),

		StorefrontSvcURL: getEnv("STOREFRONT_SVC_URL", "http://localhost:8081"),
		RateSvcURL:       getEnv("RATE_SVC_URL", "http://localhost:8082"),
		AnalyticsSvcURL:  getEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
	}
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func (c Config) Addr() string {
	return ListenAddr(c.HTTPPort)
}

func ListenAddr(port int) string {
	return ":" + strconv.Itoa(port)
}

func MustInitPostgres(cfg Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
