package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	ServerPort  string

	// Scraping
	SourceBaseURL string
	UserAgent     string
	RequestDelay  time.Duration
	OutputDir     string

	// Cover storage
	UploadDir   string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Bucket    string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		ServerPort:    getEnv("PORT", "8000"),
		SourceBaseURL: getEnv("SOURCE_BASE_URL", "https://novelasligera.com"),
		UserAgent:     os.Getenv("USER_AGENT"),
		RequestDelay:  getEnvDuration("REQUEST_DELAY", time.Second),
		OutputDir:     getEnv("OUTPUT_DIR", "output"),
		UploadDir:     getEnv("UPLOAD_DIR", "static/novels"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Invalid %s value %q, using default", key, v)
	return fallback
}
