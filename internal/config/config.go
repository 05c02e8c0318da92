package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application level configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Payroll  PayrollConfig  `mapstructure:"payroll"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SwaggerHost     string        `mapstructure:"swagger_host"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DatabaseConfig selects the SQL dialect and pool sizes.
type DatabaseConfig struct {
	Dialect         string        `mapstructure:"dialect"`
	DSN             string        `mapstructure:"dsn"`
	CreateDatabase  bool          `mapstructure:"create_database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the read-through cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// SessionConfig controls cookie sessions.
type SessionConfig struct {
	Store        string        `mapstructure:"store"`
	Secret       string        `mapstructure:"secret"`
	CookieName   string        `mapstructure:"cookie_name"`
	TTL          time.Duration `mapstructure:"ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

// AuthConfig controls password hashing.
type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// PayrollConfig controls the monthly payroll report.
type PayrollConfig struct {
	DeductionRate string `mapstructure:"deduction_rate"`
}

// Rate returns the parsed deduction rate. Validate guarantees it parses.
func (c PayrollConfig) Rate() decimal.Decimal {
	d, err := decimal.NewFromString(c.DeductionRate)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load builds Config from defaults, an optional YAML file and the
// environment (EMS_ prefix). A .env file in the working directory is loaded
// first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.swagger_host", "")

	v.SetDefault("db.dialect", "mysql")
	v.SetDefault("db.dsn", "root:password@tcp(localhost:3306)/employee_management?charset=utf8mb4&parseTime=True&loc=UTC")
	v.SetDefault("db.create_database", true)
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("session.store", "redis")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "ems_session")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.secure_cookie", false)

	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("payroll.deduction_rate", "0.10")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("EMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Database.Dialect {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("db.dialect must be one of mysql, postgres, sqlite: %q", c.Database.Dialect)
	}
	if c.Database.DSN == "" {
		return errors.New("db.dsn is required")
	}
	switch c.Session.Store {
	case "redis", "memory":
	default:
		return fmt.Errorf("session.store must be redis or memory: %q", c.Session.Store)
	}
	if len(c.Session.Secret) < 16 {
		return errors.New("session.secret must be at least 16 characters (set EMS_SESSION_SECRET)")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name is required")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31: %d", c.Auth.BcryptCost)
	}
	rate, err := decimal.NewFromString(c.Payroll.DeductionRate)
	if err != nil {
		return fmt.Errorf("payroll.deduction_rate: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("payroll.deduction_rate must be in [0,1): %s", rate)
	}
	return nil
}
