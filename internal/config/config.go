package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "STOCKDECAY_"

type Config struct {
	Server    ServerConfig    `json:"server" envPrefix:"SERVER_"`
	Database  DatabaseConfig  `json:"database" envPrefix:"DATABASE_"`
	Redis     RedisConfig     `json:"redis" envPrefix:"REDIS_"`
	Kafka     KafkaConfig     `json:"kafka" envPrefix:"KAFKA_"`
	Scheduler SchedulerConfig `json:"scheduler" envPrefix:"SCHEDULER_"`
}

type ServerConfig struct {
	Host string `json:"host" env:"HOST"`
	Port int    `json:"port" env:"PORT"`
}

type DatabaseConfig struct {
	Driver       string `json:"driver" env:"DRIVER"`
	Host         string `json:"host" env:"HOST"`
	Port         int    `json:"port" env:"PORT"`
	User         string `json:"user" env:"USER"`
	Password     string `json:"password" env:"PASSWORD"`
	DBName       string `json:"dbname" env:"NAME"`
	SSLMode      string `json:"sslmode" env:"SSLMODE"`
	MaxOpenConns int    `json:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns int    `json:"max_idle_conns" env:"MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host        string   `json:"host" env:"HOST"`
	Port        int      `json:"port" env:"PORT"`
	Password    string   `json:"password" env:"PASSWORD"`
	DB          int      `json:"db" env:"DB"`
	SnapshotTTL Duration `json:"snapshot_ttl" env:"SNAPSHOT_TTL"`
	LockTTL     Duration `json:"lock_ttl" env:"LOCK_TTL"`
}

type KafkaConfig struct {
	Brokers []string `json:"brokers" env:"BROKERS"`
	Topic   string   `json:"topic" env:"TOPIC"`
}

type SchedulerConfig struct {
	Enabled  bool     `json:"enabled" env:"ENABLED"`
	Interval Duration `json:"interval" env:"INTERVAL"`
}

// Duration reads "90s"-style strings from both JSON and the environment.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Driver:       "postgres",
			Host:         "localhost",
			Port:         5432,
			User:         "stockdecay",
			DBName:       "stockdecay",
			SSLMode:      "disable",
			MaxOpenConns: 20,
			MaxIdleConns: 10,
		},
		Redis: RedisConfig{
			Host:        "localhost",
			Port:        6379,
			SnapshotTTL: Duration(5 * time.Minute),
			LockTTL:     Duration(30 * time.Second),
		},
		Kafka: KafkaConfig{
			Topic: "inventory.day_advanced",
		},
		Scheduler: SchedulerConfig{
			Enabled:  true,
			Interval: Duration(time.Hour),
		},
	}
}

// LoadConfig starts from Default, applies the JSON file at path (skipped when
// path is empty) and then STOCKDECAY_* environment variables.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "pgx" {
		errs = append(errs, fmt.Errorf("database.driver must be postgres or pgx, got %q", c.Database.Driver))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Errorf("database.port out of range: %d", c.Database.Port))
	}
	if c.Redis.LockTTL <= 0 {
		errs = append(errs, errors.New("redis.lock_ttl must be positive"))
	}
	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		errs = append(errs, errors.New("scheduler.interval must be positive"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}

	return errors.Join(errs...)
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
