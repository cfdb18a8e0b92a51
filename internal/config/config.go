package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Task mutation policies.
const (
	TaskPolicyShared = "shared"
	TaskPolicyOwner  = "owner"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string `envconfig:"PORT" default:"5000"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"empDB"`

	JWTSecret               string `envconfig:"ACCESS_TOKEN" required:"true"`
	JWTIssuer               string `envconfig:"JWT_ISSUER" default:"staffly"`
	JWTTTLMinutes           int    `envconfig:"JWT_TTL_MINUTES" default:"60"`
	AllowPasswordlessTokens bool   `envconfig:"ALLOW_PASSWORDLESS_TOKENS" default:"false"`

	TaskMutationPolicy string   `envconfig:"TASK_MUTATION_POLICY" default:"shared"`
	CORSOrigins        []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	AppEnv             string   `envconfig:"APP_ENV" default:"development"`
	RedisURL           string   `envconfig:"REDIS_URL"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"json"`
	OTLPEndpoint  string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TraceStdout   bool   `envconfig:"TRACE_STDOUT" default:"false"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.TaskMutationPolicy = strings.ToLower(strings.TrimSpace(c.TaskMutationPolicy))
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))

	origins := make([]string, 0, len(c.CORSOrigins))
	for _, origin := range c.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CORSOrigins = origins
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("ACCESS_TOKEN is required")
	}
	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive, got %d", c.JWTTTLMinutes)
	}
	switch c.TaskMutationPolicy {
	case TaskPolicyShared, TaskPolicyOwner:
	default:
		return fmt.Errorf("TASK_MUTATION_POLICY must be %q or %q, got %q", TaskPolicyShared, TaskPolicyOwner, c.TaskMutationPolicy)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// JWTTTL is the token lifetime.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

// Production reports whether cookies must be marked Secure.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// OwnerTaskPolicy reports whether only a task's owner may change it.
func (c Config) OwnerTaskPolicy() bool {
	return c.TaskMutationPolicy == TaskPolicyOwner
}
