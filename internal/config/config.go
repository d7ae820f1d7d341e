package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is built once in main and handed to components by dependency
// injection. Nothing reads the environment after Load returns.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Payroll  PayrollConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers      []string
	PollInterval time.Duration
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type PayrollConfig struct {
	// WorkingDays is the proration divisor for monthly payroll.
	WorkingDays int
	// StandardHours is the daily threshold above which hours count as overtime.
	StandardHours int
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("port", "3000")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("server_read_timeout", 5*time.Second)
	v.SetDefault("server_write_timeout", 10*time.Second)
	v.SetDefault("server_idle_timeout", 60*time.Second)
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_poll_interval", 3*time.Second)
	v.SetDefault("jwt_access_expiry", 15*time.Minute)
	v.SetDefault("jwt_refresh_expiry", 7*24*time.Hour)
	v.SetDefault("payroll_working_days", 30)
	v.SetDefault("payroll_standard_hours", 8)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("port"),
			Mode:         v.GetString("gin_mode"),
			ReadTimeout:  v.GetDuration("server_read_timeout"),
			WriteTimeout: v.GetDuration("server_write_timeout"),
			IdleTimeout:  v.GetDuration("server_idle_timeout"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		Kafka: KafkaConfig{
			Brokers:      strings.Split(v.GetString("kafka_brokers"), ","),
			PollInterval: v.GetDuration("kafka_poll_interval"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("jwt_secret"),
			AccessExpiry:  v.GetDuration("jwt_access_expiry"),
			RefreshExpiry: v.GetDuration("jwt_refresh_expiry"),
		},
		Payroll: PayrollConfig{
			WorkingDays:   v.GetInt("payroll_working_days"),
			StandardHours: v.GetInt("payroll_standard_hours"),
		},
	}

	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
