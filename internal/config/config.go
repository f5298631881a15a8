package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	DatabaseURL   string // Postgres DSN for the document store; empty selects the file store
	DataFile      string // flat-file snapshot path (fallback store)
	RedisURL      string // optional: webhook dedup + traffic counters
	AdminKey      string // gates set/clear/settle/price/export routes
	AllowedOrigin string // CORS suffix, e.g. ".example.com"
	HistoryLimit  int    // bounded history cap
	DedupTTLHours int    // webhook delivery dedup window
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = viper.GetString("DATABASE_URL")
	}

	dataFile := viper.GetString("DATA_FILE")
	if dataFile == "" {
		dataFile = "data.json"
	}

	historyLimit := viper.GetInt("HISTORY_LIMIT")
	if historyLimit <= 0 {
		historyLimit = 1000
	}

	dedupTTL := viper.GetInt("DEDUP_TTL_HOURS")
	if dedupTTL <= 0 {
		dedupTTL = 24
	}

	return &Config{
		Env:           env,
		Port:          port,
		DatabaseURL:   dbURL,
		DataFile:      dataFile,
		RedisURL:      viper.GetString("REDIS_URL"),
		AdminKey:      viper.GetString("ADMIN_KEY"),
		AllowedOrigin: viper.GetString("ALLOWED_ORIGIN_SUFFIX"),
		HistoryLimit:  historyLimit,
		DedupTTLHours: dedupTTL,
	}, nil
}
