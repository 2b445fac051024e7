package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	BaseURL     string
	DatabaseDSN string

	// APIKey is the static shared secret every caller must present
	// in the x-api-key header.
	APIKey string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	// Storage connection retry (connection level only; operations do
	// not retry).
	DBConnectAttempts   int
	DBConnectBackoffSec int
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	if os.Getenv("API_KEY") == "" {
		log.Println("Warning: API_KEY is empty - every request will be rejected")
	}

	return Config{
		ServerPort:          os.Getenv("SERVER_PORT"),
		BaseURL:             os.Getenv("BASE_URL"),
		DatabaseDSN:         os.Getenv("DATABASE_DSN"),
		APIKey:              os.Getenv("API_KEY"),
		KafkaBroker:         os.Getenv("KAFKA_BROKER"),
		KafkaTopic:          os.Getenv("KAFKA_TOPIC"),
		KafkaUsername:       os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:       os.Getenv("KAFKA_PASSWORD"),
		DBConnectAttempts:   envInt("DB_CONNECT_ATTEMPTS", 3),
		DBConnectBackoffSec: envInt("DB_CONNECT_BACKOFF_SEC", 5),
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s: %q, using default %d", key, v, def)
		return def
	}
	return n
}
