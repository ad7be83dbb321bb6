// Package config loads the application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure shared by all
// eleganza commands.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains the web process server configuration
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Database contains the PostgreSQL connection configuration
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"eleganza" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"eleganza" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"eleganza" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Redis contains the cache connection configuration
	Redis struct {
		// Addr is the Redis server address
		Addr string `env:"REDIS_ADDR" env-default:"localhost:6379" yaml:"addr"`
		// Password for Redis authentication, empty disables AUTH
		Password string `env:"REDIS_PASSWORD" env-default:"" yaml:"password"`
		// DB selects the Redis logical database
		DB int `env:"REDIS_DB" env-default:"0" yaml:"db"`
		// DialTimeout bounds establishing a new connection
		DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s" yaml:"dialTimeout"`
		// Timeout bounds individual read and write operations
		Timeout time.Duration `env:"REDIS_TIMEOUT" env-default:"3s" yaml:"timeout"`
	} `yaml:"redis"`

	// SMTP contains the mail delivery configuration. In development this
	// points at the local mail catcher.
	SMTP struct {
		// Host is the SMTP server hostname
		Host string `env:"SMTP_HOST" env-default:"localhost" yaml:"host"`
		// Port is the SMTP server port
		Port int `env:"SMTP_PORT" env-default:"1025" yaml:"port"`
		// From is the sender address used for platform mail
		From string `env:"SMTP_FROM" env-default:"noreply@eleganza.local" yaml:"from"`
		// Username enables SMTP AUTH when non-empty
		Username string `env:"SMTP_USERNAME" env-default:"" yaml:"username"`
		// Password for SMTP AUTH
		Password string `env:"SMTP_PASSWORD" env-default:"" yaml:"password"`
	} `yaml:"smtp"`

	// JWT configures admin API token signing
	JWT struct {
		// Secret is the HS256 signing secret for admin API tokens
		Secret string `env:"JWT_SECRET" env-default:"dev-secret-change-me" yaml:"secret"`
	} `yaml:"jwt"`

	// Migrations configures the on-disk migrations tree
	Migrations struct {
		// Dir is the root directory holding one migrations subdirectory per app
		Dir string `env:"MIGRATIONS_DIR" env-default:"migrations" yaml:"dir"`
	} `yaml:"migrations"`

	// Superuser holds the non-interactive bootstrap credentials
	Superuser struct {
		// Username of the bootstrap superuser account
		Username string `env:"ELEGANZA_SUPERUSER_USERNAME" env-default:"admin" yaml:"username"`
		// Email of the bootstrap superuser account
		Email string `env:"ELEGANZA_SUPERUSER_EMAIL" env-default:"admin@example.com" yaml:"email"`
		// Password of the bootstrap superuser account
		Password string `env:"ELEGANZA_SUPERUSER_PASSWORD" env-default:"Admin123" yaml:"password"`
	} `yaml:"superuser"`

	// Supervisor configures the start command's restart loop
	Supervisor struct {
		// RestartDelay is the fixed pause between server relaunches
		RestartDelay time.Duration `env:"SUPERVISOR_RESTART_DELAY" env-default:"5s" yaml:"restartDelay"`
	} `yaml:"supervisor"`

	// Worker configures background job processing
	Worker struct {
		// MaxWorkers bounds concurrent jobs in the default queue
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"10" yaml:"maxWorkers"`
		// UserCountInterval is the period of the user count snapshot job
		UserCountInterval time.Duration `env:"WORKER_USER_COUNT_INTERVAL" env-default:"15m" yaml:"userCountInterval"`
		// StatsCacheTTL bounds how long cached platform stats stay fresh
		StatsCacheTTL time.Duration `env:"WORKER_STATS_CACHE_TTL" env-default:"30m" yaml:"statsCacheTTL"`
	} `yaml:"worker"`

	// Monitor configures the job dashboard process
	Monitor struct {
		// Addr is the address and port the dashboard listens on
		Addr string `env:"MONITOR_ADDR" env-default:":5555" yaml:"addr"`
	} `yaml:"monitor"`

	// Topology is the path of the deployment topology descriptor
	Topology struct {
		// File is the compose descriptor validated by the verify command
		File string `env:"TOPOLOGY_FILE" env-default:"deploy/docker-compose.yml" yaml:"file"`
	} `yaml:"topology"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
