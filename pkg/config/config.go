package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Env string

	Database DatabaseConfig
	Log      LogConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnectTimeout time.Duration
}

// LogConfig controls console encoding and the optional rotating file sink.
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// ExportConfig sets where exported result files are written.
type ExportConfig struct {
	Dir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}
	cfg.Env = v.GetString("ENV")

	cfg.Database = DatabaseConfig{
		Driver:         strings.ToLower(v.GetString("DB_DRIVER")),
		Host:           v.GetString("DB_HOST"),
		Port:           v.GetInt("DB_PORT"),
		User:           v.GetString("DB_USER"),
		Password:       v.GetString("DB_PASSWORD"),
		Name:           v.GetString("DB_NAME"),
		SSLMode:        v.GetString("DB_SSL_MODE"),
		MaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnectTimeout: parseDuration(v.GetString("DB_CONNECT_TIMEOUT"), 5*time.Second),
	}
	applyLegacyMySQL(v, &cfg.Database)
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultPort(cfg.Database.Driver)
	}

	cfg.Log = LogConfig{
		Level:      v.GetString("LOG_LEVEL"),
		Format:     v.GetString("LOG_FORMAT"),
		File:       v.GetString("LOG_FILE"),
		MaxSizeMB:  v.GetInt("LOG_MAX_SIZE"),
		MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		MaxAgeDays: v.GetInt("LOG_MAX_AGE"),
		Compress:   v.GetBool("LOG_COMPRESS"),
	}

	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	return cfg
}

// applyLegacyMySQL honours the MYSQL_* variables used by earlier deployments
// whenever the corresponding DB_* key was not supplied.
func applyLegacyMySQL(v *viper.Viper, db *DatabaseConfig) {
	if !v.IsSet("DB_HOST") {
		if server := strings.TrimPrefix(v.GetString("MYSQL_SERVER"), "tcp://"); server != "" {
			host, port, err := net.SplitHostPort(server)
			if err != nil {
				host = server
			} else if p, convErr := strconv.Atoi(port); convErr == nil && !v.IsSet("DB_PORT") {
				db.Port = p
			}
			db.Host = host
		}
	}
	if !v.IsSet("DB_PORT") && v.IsSet("MYSQL_PORT") {
		db.Port = v.GetInt("MYSQL_PORT")
	}
	if !v.IsSet("DB_USER") && v.IsSet("MYSQL_USER") {
		db.User = v.GetString("MYSQL_USER")
	}
	if !v.IsSet("DB_PASSWORD") && v.IsSet("MYSQL_PASSWORD") {
		db.Password = v.GetString("MYSQL_PASSWORD")
	}
	if !v.IsSet("DB_NAME") && v.IsSet("MYSQL_DATABASE") {
		db.Name = v.GetString("MYSQL_DATABASE")
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE", 10)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE", 28)
	v.SetDefault("LOG_COMPRESS", false)

	v.SetDefault("EXPORT_DIR", "./exports")
}

// Validate reports missing connection settings before any dial is attempted.
func (c *Config) Validate() error {
	var missing []string
	db := c.Database
	switch db.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", db.Driver)
	}
	if db.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if db.User == "" {
		missing = append(missing, "DB_USER")
	}
	if db.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing database settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func defaultPort(driver string) int {
	if driver == DriverPostgres {
		return 5432
	}
	return 3306
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
