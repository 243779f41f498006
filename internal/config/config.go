package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Match policies for the version compatibility evaluator.
const (
	MatchPolicyExact        = "exact"
	MatchPolicyNearestBelow = "nearest_below"

	UnmatchedPolicyUnconstrained = "unconstrained"
	UnmatchedPolicyForceUpdate   = "force_update"
)

type Config struct {
	AppEnv string
	Port   string

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDB       string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	AdminAPIKeys   []string
	AdminJWTSecret string

	ImagePublicPath      string
	UploadDir            string
	UploadMaxBytes       int64
	StaticImageMaxWidth  int
	StaticImageMaxPixels int64
	UploadRequireStatic  bool

	VersionMatchPolicy     string
	VersionUnmatchedPolicy string
	CompatibilityCacheTTL  time.Duration
	ThemeCacheTTL          time.Duration

	PushTimeout        time.Duration
	CORSAllowedOrigins []string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv: getenv("APP_ENV", "development"),
		Port:   getenv("APP_PORT", "8080"),

		PGHost:     getenv("PG_HOST", "localhost"),
		PGPort:     getenv("PG_PORT", "5432"),
		PGUser:     getenv("PG_USER", "appfiy"),
		PGPassword: os.Getenv("PG_PASSWORD"),
		PGDB:       getenv("PG_DB", "appfiy"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AdminAPIKeys:   splitList(os.Getenv("ADMIN_API_KEYS")),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),

		ImagePublicPath:      getenv("IMAGE_PUBLIC_PATH", "/uploads/"),
		UploadDir:            getenv("UPLOAD_DIR", "./uploads"),
		UploadMaxBytes:       int64(getenvInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		StaticImageMaxWidth:  getenvInt("STATIC_IMAGE_MAX_WIDTH", 1080),
		StaticImageMaxPixels: int64(getenvInt("STATIC_IMAGE_MAX_PIXELS", 40_000_000)),
		UploadRequireStatic:  getenvBool("UPLOAD_REQUIRE_STATIC", true),

		VersionMatchPolicy:     getenv("VERSION_MATCH_POLICY", MatchPolicyExact),
		VersionUnmatchedPolicy: getenv("VERSION_UNMATCHED_POLICY", UnmatchedPolicyUnconstrained),
		CompatibilityCacheTTL:  time.Duration(getenvInt("COMPATIBILITY_CACHE_SECONDS", 60)) * time.Second,
		ThemeCacheTTL:          time.Duration(getenvInt("THEME_CACHE_SECONDS", 300)) * time.Second,

		PushTimeout:        time.Duration(getenvInt("PUSH_TIMEOUT_SECONDS", 10)) * time.Second,
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "https://*,http://localhost:8081")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.VersionMatchPolicy {
	case MatchPolicyExact, MatchPolicyNearestBelow:
	default:
		return fmt.Errorf("VERSION_MATCH_POLICY must be %q or %q, got %q", MatchPolicyExact, MatchPolicyNearestBelow, c.VersionMatchPolicy)
	}
	switch c.VersionUnmatchedPolicy {
	case UnmatchedPolicyUnconstrained, UnmatchedPolicyForceUpdate:
	default:
		return fmt.Errorf("VERSION_UNMATCHED_POLICY must be %q or %q, got %q", UnmatchedPolicyUnconstrained, UnmatchedPolicyForceUpdate, c.VersionUnmatchedPolicy)
	}
	if c.StaticImageMaxWidth <= 0 {
		return errors.New("STATIC_IMAGE_MAX_WIDTH must be positive")
	}
	if c.StaticImageMaxPixels <= 0 {
		return errors.New("STATIC_IMAGE_MAX_PIXELS must be positive")
	}
	if c.AppEnv == "production" && len(c.AdminAPIKeys) == 0 && c.AdminJWTSecret == "" {
		return errors.New("ADMIN_API_KEYS or ADMIN_JWT_SECRET is required in production")
	}
	return nil
}

// PostgresDSN is shared by the sqlx and GORM connections.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// RedisEnabled reports whether the Redis cache should replace the in-memory one.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
