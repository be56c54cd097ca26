package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DataDir   string
	TasksFile string
	UsersFile string
}

// Load reads configuration from the environment (optionally seeded by a
// .env file). The result is injected into the auth and API layers; nothing
// reads configuration from a shared global.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort: getEnv("API_PORT", "3000"),
		JWTKey:  []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:  time.Duration(getEnvAsInt("JWT_EXPIRATION_MINUTES", 60)) * time.Minute,
		DataDir: getEnv("DATA_DIR", "."),
	}
	cfg.TasksFile = filepath.Join(cfg.DataDir, "tasks.json")
	cfg.UsersFile = filepath.Join(cfg.DataDir, "users.json")
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
