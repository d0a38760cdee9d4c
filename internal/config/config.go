package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// Config holds application configuration
type Config struct {
	// Database
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server
	ServerPort  string
	Env         string
	AutoMigrate bool

	// CORS
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() Config {
	dbDriver := os.Getenv("DB_DRIVER")
	if dbDriver == "" {
		dbDriver = DriverSQLite
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "app.db"
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5555"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	autoMigrate := true
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			autoMigrate = b
		}
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	cfg := Config{
		DBDriver:       strings.ToLower(strings.TrimSpace(dbDriver)),
		DBPath:         dbPath,
		DBHost:         dbHost,
		DBPort:         dbPort,
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		ServerPort:     serverPort,
		Env:            env,
		AutoMigrate:    autoMigrate,
		AllowedOrigins: strings.Split(allowedOrigins, ","),
	}

	for i := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(cfg.AllowedOrigins[i])
	}

	return cfg
}

// Validate reports configuration that cannot be used to open a database.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for driver %q", c.DBDriver)
		}
	case DriverMySQL:
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: must be %q or %q", c.DBDriver, DriverSQLite, DriverMySQL)
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
	return c.DBPath
}
