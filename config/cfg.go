package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	httpapi "github.com/jekabolt/wedding-rsvp/internal/api/http"
	"github.com/jekabolt/wedding-rsvp/internal/mail"
	"github.com/jekabolt/wedding-rsvp/internal/ratelimit"
	"github.com/jekabolt/wedding-rsvp/internal/store"
	"github.com/jekabolt/wedding-rsvp/internal/store/bunt"
	"github.com/jekabolt/wedding-rsvp/internal/view"
	"github.com/jekabolt/wedding-rsvp/log"
	"github.com/spf13/viper"
)

const (
	StoreSQL  = "sql"
	StoreBunt = "bunt"
)

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Type string       `mapstructure:"type"`
	SQL  store.Config `mapstructure:"sql"`
	Bunt bunt.Config  `mapstructure:"bunt"`
}

// Config represents the global configuration for the service.
type Config struct {
	Store     StoreConfig      `mapstructure:"store"`
	Logger    log.Config       `mapstructure:"logger"`
	HTTP      httpapi.Config   `mapstructure:"http"`
	Mailer    mail.Config      `mapstructure:"mailer"`
	RateLimit ratelimit.Config `mapstructure:"rate_limit"`
	Site      view.Site        `mapstructure:"site"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g. STORE__SQL__DSN for store.sql.dsn,
// the common ones are also bound to flat names, e.g. SQL_DSN.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	setDefaults(v)
	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/wedding-rsvp")
		v.AddConfigPath("/etc/wedding-rsvp")
		// env vars alone are enough
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	if config.Store.Type == StoreSQL && config.Store.SQL.DSN == "" {
		config.Store.SQL.DSN = dsnFromEnv(config.Store.SQL.Driver)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Store.Type {
	case StoreBunt:
		if c.Store.Bunt.Path == "" {
			return errors.New("store.bunt.path is required")
		}
	case StoreSQL:
		if c.Store.SQL.DSN == "" {
			return fmt.Errorf("store.sql.dsn is required for driver %q", c.Store.SQL.Driver)
		}
	default:
		return fmt.Errorf("unknown store type %q", c.Store.Type)
	}
	return nil
}

// dsnFromEnv assembles a DSN from the variables hosting platforms usually inject.
func dsnFromEnv(driver string) string {
	switch driver {
	case store.DriverPostgres:
		return os.Getenv("DATABASE_URL")
	case store.DriverMySQL:
		host := os.Getenv("MYSQL_HOST")
		port := os.Getenv("MYSQL_PORT")
		user := os.Getenv("MYSQL_USER")
		password := os.Getenv("MYSQL_PASSWORD")
		database := os.Getenv("MYSQL_DATABASE")
		if host == "" || user == "" || password == "" || database == "" {
			return ""
		}
		if port == "" {
			port = "3306"
		}
		tls := ""
		if os.Getenv("MYSQL_TLS_CA_PATH") != "" {
			tls = "&tls=custom"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true%s",
			user, password, host, port, database, tls)
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.type", StoreBunt)
	v.SetDefault("store.sql.driver", store.DriverSQLite)
	v.SetDefault("store.sql.automigrate", true)
	v.SetDefault("store.sql.max_open_connections", 10)
	v.SetDefault("store.sql.max_idle_connections", 5)
	v.SetDefault("store.bunt.path", "data/rsvps.db")
	v.SetDefault("store.bunt.sync_policy", "everysecond")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.address", "")

	v.SetDefault("mailer.worker_interval", 30*time.Second)
	v.SetDefault("mailer.queue_size", 100)

	v.SetDefault("rate_limit.lookup_per_minute", ratelimit.DefaultConfig.LookupPerMinute)
	v.SetDefault("rate_limit.submit_per_hour", ratelimit.DefaultConfig.SubmitPerHour)
	v.SetDefault("rate_limit.email_submit_per_hour", ratelimit.DefaultConfig.EmailSubmitPerHour)

	v.SetDefault("site.title", "Our Wedding")
}

// bindEnvVars binds flat environment variable names to config keys.
func bindEnvVars(v *viper.Viper) error {
	binds := [][]string{
		// Store
		{"store.type", "STORE_TYPE"},
		{"store.sql.driver", "SQL_DRIVER"},
		{"store.sql.dsn", "SQL_DSN"},
		{"store.sql.automigrate", "SQL_AUTOMIGRATE"},
		{"store.sql.max_open_connections", "SQL_MAX_OPEN_CONNECTIONS"},
		{"store.sql.max_idle_connections", "SQL_MAX_IDLE_CONNECTIONS"},
		{"store.sql.tls_ca_path", "MYSQL_TLS_CA_PATH"},
		{"store.bunt.path", "BUNT_PATH"},
		{"store.bunt.sync_policy", "BUNT_SYNC_POLICY"},

		// Logger
		{"logger.level", "LOG_LEVEL"},
		{"logger.add_source", "LOG_ADD_SOURCE"},

		// HTTP
		{"http.port", "HTTP_PORT", "PORT"},
		{"http.address", "HTTP_ADDRESS"},
		{"http.allowed_origins", "HTTP_ALLOWED_ORIGINS"},
		{"http.debug", "HTTP_DEBUG"},

		// Mailer
		{"mailer.sendgrid_api_key", "MAILER_SENDGRID_API_KEY"},
		{"mailer.from_email", "MAILER_FROM_EMAIL"},
		{"mailer.from_email_name", "MAILER_FROM_EMAIL_NAME"},
		{"mailer.reply_to", "MAILER_REPLY_TO"},
		{"mailer.worker_interval", "MAILER_WORKER_INTERVAL"},
		{"mailer.queue_size", "MAILER_QUEUE_SIZE"},

		// Rate limits
		{"rate_limit.lookup_per_minute", "RATE_LIMIT_LOOKUP_PER_MINUTE"},
		{"rate_limit.submit_per_hour", "RATE_LIMIT_SUBMIT_PER_HOUR"},
		{"rate_limit.email_submit_per_hour", "RATE_LIMIT_EMAIL_SUBMIT_PER_HOUR"},
	}
	for _, b := range binds {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("can't bind env %v: %w", b[1:], err)
		}
	}
	return nil
}
