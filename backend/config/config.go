package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Strategies for picking the "active" plan on the dashboard.
const (
	ActivePlanByStartDate   = "start_date"
	ActivePlanByLastTouched = "last_touched"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	RazorpayKeyID     string
	RazorpayKeySecret string

	// ActivePlanStrategy selects how the active plan is chosen:
	// "start_date" (most recently started) or "last_touched" (most
	// recently updated).
	ActivePlanStrategy string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "study_tracker"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		RazorpayKeyID:      getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:  getEnv("RAZORPAY_KEY_SECRET", ""),
		ActivePlanStrategy: getEnv("ACTIVE_PLAN_STRATEGY", ActivePlanByStartDate),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
