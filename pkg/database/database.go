package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/sma-clubs/pkg/config"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

// Open dials the configured engine and verifies the connection with a ping.
// The returned handle is shared by every table accessor for the process lifetime.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, dsn, err := DSN(cfg)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConnection.Kind, appErrors.ErrConnection.Code, "invalid database settings")
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConnection.Kind, appErrors.ErrConnection.Code, appErrors.ErrConnection.Message)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrConnection.Kind, appErrors.ErrConnection.Code, appErrors.ErrConnection.Message)
	}

	return db, nil
}

// DSN returns the sqlx driver name and data source for cfg.
func DSN(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverMySQL, "":
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Name
		mc.ParseTime = false
		mc.ClientFoundRows = true
		mc.Timeout = cfg.ConnectTimeout
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return "mysql", mc.FormatDSN(), nil
	case config.DriverPostgres:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
			sslMode,
		)
		return "postgres", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}
