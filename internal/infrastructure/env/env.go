package env

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env and then .env.<APP_ENV> on top of it. APP_ENV may
// come from .env itself. Missing files are fine; variables already set in the
// process win over .env but not over .env.<APP_ENV>.
func LoadDotEnv() string {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load %s: %v", envFile, err)
	}

	return appEnv
}
