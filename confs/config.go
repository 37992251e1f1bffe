package confs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings when needed.
func LoadConfig() error {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		// Only log when the file truly doesn't exist; not an error for runtime
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}
	return nil
}

// ServerAddress is the listen address, SERVER_ADDR or the default port.
func ServerAddress() string {
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		return addr
	}
	return "0.0.0.0:3536"
}

// SessionCookieName is the cookie carrying the session token.
func SessionCookieName() string {
	if name := os.Getenv("SESSION_COOKIE"); name != "" {
		return name
	}
	return "roomhub_session"
}

// SessionTTL is how long a session lives, SESSION_TTL_HOURS or two weeks.
func SessionTTL() time.Duration {
	if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
		log.Printf("warning: invalid SESSION_TTL_HOURS %q, using default", raw)
	}
	return 14 * 24 * time.Hour
}
