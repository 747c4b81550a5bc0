package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StorageBackend string // "file" | "redis"
	StorageFile    string // blob path when backend is "file"
	StorageKey     string // blob key when backend is "redis"

	ProxyFile    string        // optional proxies.yaml path (empty = built-in proxy list)
	FetchTimeout time.Duration // per-proxy attempt timeout (default: 10s)

	SnapshotDir      string        // directory for dated export snapshots (empty = snapshots disabled)
	SnapshotInterval time.Duration // interval between snapshots (default: 24h)

	SeedSample bool // create a sample bookmark when the collection is empty

	AllowedHosts []string // optional, restrict access to specific Host headers
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	RateBurst        int // rate limit burst per client IP
	RateRefillPerMin int // rate limit refill per client IP per minute

	// Redis (only read when StorageBackend is "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
}

func Load() *Config {
	// Best effort; a missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STASH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STASH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("STASH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STASH_PRETTY_LOG", true),

		// Persistence
		StorageBackend: getenv("STASH_STORAGE_BACKEND", BackendFile),
		StorageFile:    getenv("STASH_STORAGE_FILE", "data/bookmarks.json"),
		StorageKey:     getenv("STASH_STORAGE_KEY", "stash:bookmarks"),

		// Fetch
		ProxyFile:    getenv("STASH_PROXY_FILE", ""),
		FetchTimeout: mustDuration("STASH_FETCH_TIMEOUT", 10*time.Second),

		// Snapshots
		SnapshotDir:      getenv("STASH_SNAPSHOT_DIR", ""),
		SnapshotInterval: mustDuration("STASH_SNAPSHOT_INTERVAL", 24*time.Hour),

		SeedSample: mustBool("STASH_SEED_SAMPLE", false),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("STASH_ALLOWED_HOSTS", "")),
		TrustProxy:   mustBool("STASH_TRUST_PROXY", false),

		RateBurst:        getenvInt("STASH_RATE_BURST", 30),
		RateRefillPerMin: getenvInt("STASH_RATE_REFILL_PER_MIN", 60),
	}

	switch cfg.StorageBackend {
	case BackendFile:
		// nothing else required
	case BackendRedis:
		cfg.RedisAddr = requireEnv("STASH_REDIS_ADDR")
		cfg.RedisUser = getenv("STASH_REDIS_USERNAME", "default")
		cfg.RedisPassword = getenv("STASH_REDIS_PASSWORD", "")
		cfg.RedisDB = getenvInt("STASH_REDIS_DB", 0)
		cfg.RedisDialTimeout = mustDuration("STASH_REDIS_DIAL_TIMEOUT", 5*time.Second)
		cfg.RedisReadTimeout = mustDuration("STASH_REDIS_READ_TIMEOUT", 3*time.Second)
		cfg.RedisWriteTimeout = mustDuration("STASH_REDIS_WRITE_TIMEOUT", 3*time.Second)
		cfg.RedisPoolSize = getenvInt("STASH_REDIS_POOL_SIZE", 10)
		cfg.RedisConnectTimeout = mustDuration("STASH_REDIS_CONNECT_TIMEOUT", 30*time.Second)
		cfg.RedisRetryInterval = mustDuration("STASH_REDIS_RETRY_INTERVAL", 2*time.Second)
		cfg.RedisMaxWait = mustDuration("STASH_REDIS_MAX_WAIT", 10*time.Second)
		cfg.RedisPingTimeout = mustDuration("STASH_REDIS_PING_TIMEOUT", 5*time.Second)
	default:
		panic(fmt.Sprintf("❌ FATAL: unknown STASH_STORAGE_BACKEND %q (want %q or %q)",
			cfg.StorageBackend, BackendFile, BackendRedis))
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
