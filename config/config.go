package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`

	// Document store.
	StoreDriver    string `mapstructure:"STORE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
	StoreBatchSize int    `mapstructure:"STORE_BATCH_SIZE"`

	// Redis configuration (job queue and health checks).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Firebase and caller authentication.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	AuthProvider            string `mapstructure:"AUTH_PROVIDER"`
	JWTSecret               string `mapstructure:"JWT_SECRET"`

	// Pipeline tuning.
	ExpiryLookaheadDays int           `mapstructure:"EXPIRY_LOOKAHEAD_DAYS"`
	RetentionDays       int           `mapstructure:"RETENTION_DAYS"`
	FanoutConcurrency   int           `mapstructure:"FANOUT_CONCURRENCY"`
	JoinConcurrency     int           `mapstructure:"JOIN_CONCURRENCY"`
	PushTimeout         time.Duration `mapstructure:"PUSH_TIMEOUT"`
	PushOnExpiry        bool          `mapstructure:"PUSH_ON_EXPIRY"`
	ReportTimezone      string        `mapstructure:"REPORT_TIMEZONE"`
	JobSchedule         string        `mapstructure:"JOB_SCHEDULE"`
	JobTimeout          time.Duration `mapstructure:"JOB_TIMEOUT"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env file is optional.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers every known key so AutomaticEnv can override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGINS", []string{"*"})

	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "rentwatch")
	v.SetDefault("STORE_BATCH_SIZE", 500)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_QUEUE_DB", 0)

	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("AUTH_PROVIDER", "firebase")
	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("EXPIRY_LOOKAHEAD_DAYS", 15)
	v.SetDefault("RETENTION_DAYS", 30)
	v.SetDefault("FANOUT_CONCURRENCY", 8)
	v.SetDefault("JOIN_CONCURRENCY", 4)
	v.SetDefault("PUSH_TIMEOUT", "10s")
	v.SetDefault("PUSH_ON_EXPIRY", false)
	v.SetDefault("REPORT_TIMEZONE", "UTC")
	v.SetDefault("JOB_SCHEDULE", "@every 24h")
	v.SetDefault("JOB_TIMEOUT", "9m")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ReportLocation resolves REPORT_TIMEZONE, falling back to UTC.
func ReportLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.ReportTimezone)
	if err != nil {
		log.Printf("Unknown REPORT_TIMEZONE %q, using UTC", AppConfig.ReportTimezone)
		return time.UTC
	}
	return loc
}
