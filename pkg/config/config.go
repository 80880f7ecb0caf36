package config

import (
	"fmt"
	"time"
)

// Config holds runtime configuration for the template bot.
type Config struct {
	AppEnv string `mapstructure:"-"`

	Bot      BotConfig      `mapstructure:"bot"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Wizard   WizardConfig   `mapstructure:"wizard"`
	Users    UsersConfig    `mapstructure:"users"`
	Orders   OrdersConfig   `mapstructure:"orders"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

type BotConfig struct {
	Token           string        `mapstructure:"token" validate:"required"`
	Mode            string        `mapstructure:"mode" validate:"oneof=poll webhook"`
	Timeout         time.Duration `mapstructure:"timeout"`
	OffersChannelID int64         `mapstructure:"offers_channel_id" validate:"required"`
	OperatorsChatID int64         `mapstructure:"operators_chat_id"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
	File   string `mapstructure:"file"`
}

type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn" validate:"required_if=Enabled true"`
}

type WizardConfig struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type UsersConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type OrdersConfig struct {
	MaxPending int `mapstructure:"max_pending" validate:"min=1"`
}

type JobsConfig struct {
	HeartbeatSchedule string `mapstructure:"heartbeat_schedule"`
	WorkerConcurrency int    `mapstructure:"worker_concurrency" validate:"min=1"`
}

// DSN returns the PostgreSQL connection string based on config values.
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		sslMode,
	)
}
