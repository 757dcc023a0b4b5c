package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	PhotoPath string // Directory holding contact photos
	PhotoURL  string // URL prefix the photo directory is served under

	BackupPath     string // Directory holding local backup archives
	BackupSchedule string // Cron expression for automatic backups, empty disables
	AutoUpload     bool   // Upload automatic backups to the cloud bucket

	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional, for S3 compatible storage
	S3Prefix    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "pocket-crm"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "pocket-crm"),

		PhotoPath: getEnv("PHOTO_PATH", "./uploads/photos"),
		PhotoURL:  "/" + strings.Trim(getEnv("PHOTO_URL", "/photos"), "/"),

		BackupPath:     getEnv("BACKUP_PATH", "./backups"),
		BackupSchedule: getEnv("BACKUP_SCHEDULE", ""),
		AutoUpload:     getEnv("AUTO_UPLOAD", "false") == "true",

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Prefix:    strings.Trim(getEnv("S3_PREFIX", "backups"), "/"),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CloudEnabled reports whether a backup bucket is configured.
func (c *Config) CloudEnabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
