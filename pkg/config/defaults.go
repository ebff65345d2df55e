// Package config provides centralized default values for GreenBasket
package config

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Facade server configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Local storage
	DataDir       string
	StoreDriver   string
	LibsqlURL     string
	LibsqlToken   string
	DeviceKeyPath string

	// Remote backend
	APIBaseURL     string
	GatewayTimeout time.Duration

	// Background reconciliation
	ReconcileInterval time.Duration
	ReconcileEnabled  bool

	// SSE Configuration
	MaxEventSubscribers         int
	SSEHeartbeatIntervalSeconds int

	// Voice search
	AAIAPIKey        string
	VoiceMaxClipSecs int

	// Product image cache
	ImageCacheDir    string
	ImageCacheMaxMB  int
	ThumbnailMaxEdge int

	// Logging
	LogDirectory    string
	LogToFile       bool
	LogJSON         bool
	SlowWriteBudget time.Duration
)

func defaultDataDir() string {
	if dir := os.Getenv("GREENBASKET_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".greenbasket"
	}
	return filepath.Join(home, ".greenbasket")
}

func init() {
	loadEnvFile()

	// Facade server configuration
	Port = getEnvString("PORT", "8787")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Local storage
	DataDir = getEnvString("DATA_DIR", defaultDataDir())
	StoreDriver = getEnvString("STORE_DRIVER", "sqlite3")
	LibsqlURL = getEnvString("LIBSQL_URL", "")
	LibsqlToken = getEnvString("LIBSQL_AUTH_TOKEN", "")
	DeviceKeyPath = getEnvString("DEVICE_KEY_PATH", filepath.Join(DataDir, "device.key"))

	// Remote backend
	APIBaseURL = getEnvString("API_BASE_URL", "https://api.greenbasket.in")
	GatewayTimeout = getEnvDuration("GATEWAY_TIMEOUT", 10*time.Second)

	// Background reconciliation
	ReconcileInterval = getEnvDuration("RECONCILE_INTERVAL", 15*time.Minute)
	ReconcileEnabled = getEnvBool("RECONCILE_ENABLED", true)

	// SSE Configuration
	MaxEventSubscribers = getEnvInt("MAX_EVENT_SUBSCRIBERS", 8)
	SSEHeartbeatIntervalSeconds = getEnvInt("SSE_HEARTBEAT_INTERVAL_SECONDS", 30)

	// Voice search
	AAIAPIKey = getEnvString("AAI_API_KEY", "")
	VoiceMaxClipSecs = getEnvInt("VOICE_MAX_CLIP_SECONDS", 30)

	// Product image cache
	ImageCacheDir = getEnvString("IMAGE_CACHE_DIR", filepath.Join(DataDir, "images"))
	ImageCacheMaxMB = getEnvInt("IMAGE_CACHE_MAX_MB", 128)
	ThumbnailMaxEdge = getEnvInt("THUMBNAIL_MAX_EDGE", 320)

	// Logging
	LogDirectory = getEnvString("LOG_DIRECTORY", filepath.Join(DataDir, "logs"))
	LogToFile = getEnvBool("LOG_TO_FILE", false)
	LogJSON = getEnvBool("LOG_JSON", true)
	SlowWriteBudget = getEnvDuration("SLOW_WRITE_BUDGET", 250*time.Millisecond)
}
