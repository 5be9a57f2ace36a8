package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func loadEnv(key string) string {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using process environment")
	}
	return os.Getenv(key)
}

func EnvMongoURI() string {
	return loadEnv("MONGOURI")
}

func EnvJWTSecret() string {
	return loadEnv("JWT_SECRET")
}

func EnvRazorpayKeyId() string {
	return loadEnv("RAZORPAY_KEY_ID")
}

func EnvRazorpayKeySecret() string {
	return loadEnv("RAZORPAY_KEY_SECRET")
}

func EnvLogFile() string {
	if v := loadEnv("LOG_FILE"); v != "" {
		return v
	}
	return "./logs/app.log"
}
