package store

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config defines configurations to connect database
type Config struct {
	Driver             string `mapstructure:"driver"`
	DSN                string `mapstructure:"dsn"`
	Automigrate        bool   `mapstructure:"automigrate"`
	MaxOpenConnections int    `mapstructure:"max_open_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`
	TLSCAPath          string `mapstructure:"tls_ca_path"`
}

// SQLStore implements methods to access a MySQL, Postgres or SQLite database
type SQLStore struct {
	// db is used for executing queries
	db    dependency.DB
	txDB  txDB
	ts    time.Time
	close context.CancelFunc
}

// migration dialect names understood by sql-migrate
var dialects = map[string]string{
	DriverMySQL:    "mysql",
	DriverPostgres: "postgres",
	DriverSQLite:   "sqlite3",
}

// resolveCertPath resolves @certs paths to the config/certs directory
func resolveCertPath(path string) string {
	if strings.HasPrefix(path, "@certs/") {
		configPaths := []string{
			"./config/certs",
			"$HOME/config/wedding-rsvp/certs",
			"/etc/wedding-rsvp/certs",
		}

		certFile := strings.TrimPrefix(path, "@certs/")
		for _, basePath := range configPaths {
			if strings.HasPrefix(basePath, "$") {
				basePath = os.ExpandEnv(basePath)
			}
			fullPath := filepath.Join(basePath, certFile)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath
			}
		}
		return filepath.Join("./config/certs", certFile)
	}
	return path
}

// registerTLSConfig registers a custom TLS configuration with the MySQL driver.
// db.CA_CERT (certificate content) wins over TLSCAPath (file path).
func registerTLSConfig(cfg Config) error {
	if cfg.Driver != DriverMySQL {
		return nil
	}
	var caCert []byte
	var err error

	if dbCACert := os.Getenv("db.CA_CERT"); dbCACert != "" {
		caCert = []byte(dbCACert)
		slog.Default().Info("using CA certificate from db.CA_CERT environment variable")
	} else if cfg.TLSCAPath != "" {
		certPath := resolveCertPath(cfg.TLSCAPath)
		caCert, err = os.ReadFile(certPath)
		if err != nil {
			return fmt.Errorf("failed to read CA certificate from %s: %w", certPath, err)
		}
		slog.Default().Info("using CA certificate from file", "path", certPath)
	} else {
		return nil
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return fmt.Errorf("failed to parse CA certificate")
	}

	// referenced from the DSN as tls=custom
	return mysql.RegisterTLSConfig("custom", &tls.Config{
		RootCAs: caCertPool,
	})
}

func open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if _, ok := dialects[cfg.Driver]; !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("sql dsn is required")
	}
	if err := registerTLSConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to register TLS config: %w", err)
	}

	d, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database : %v", err)
	}

	if cfg.Driver == DriverSQLite {
		// sqlite allows a single writer
		d.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConnections > 0 {
			d.SetMaxOpenConns(cfg.MaxOpenConnections)
		}
		if cfg.MaxIdleConnections > 0 {
			d.SetMaxIdleConns(cfg.MaxIdleConnections)
		}
		d.SetConnMaxLifetime(2 * time.Minute)
		d.SetConnMaxIdleTime(30 * time.Second)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := d.PingContext(pingCtx); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return d, nil
}

// New connects to the database, applies migrations when configured and returns a new SQLStore object.
func New(ctx context.Context, cfg Config) (*SQLStore, error) {
	d, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Automigrate {
		slog.Default().InfoContext(ctx, "applying migrations",
			slog.String("driver", cfg.Driver),
		)
		migrateCtx, migrateCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer migrateCancel()
		if err := MigrateWithContext(migrateCtx, d.DB, cfg.Driver); err != nil {
			d.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	ctx, c := context.WithCancel(ctx)
	ss := &SQLStore{
		db:    d,
		close: c,
	}

	go func() {
		<-ctx.Done()
		d.Close()
	}()

	return ss, nil
}

//go:embed sql
var fs embed.FS

// Migrate applies the embedded migrations of the given driver and returns how many were applied.
func Migrate(ctx context.Context, cfg Config) (int, error) {
	d, err := open(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer d.Close()
	return migrateUp(d.DB, cfg.Driver)
}

func migrateUp(db *sql.DB, driver string) (int, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return 0, fmt.Errorf("unsupported sql driver %q", driver)
	}
	m := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "sql/" + driver,
	}
	return migrate.Exec(db, dialect, m, migrate.Up)
}

func MigrateWithContext(ctx context.Context, db *sql.DB, driver string) error {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := migrateUp(db, driver)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("migration timeout: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("db migrations have failed: %w", res.err)
		}
		slog.Default().InfoContext(ctx, "applied migrations",
			slog.Int("count", res.n),
		)
		return nil
	}
}

func (ms *SQLStore) Close() {
	ms.close()
}

// Ping checks database connectivity by executing a simple query
func (ms *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result int
	err := ms.db.QueryRowxContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
