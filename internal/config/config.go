package config

import (
	"bookStore/package/logger"
	"github.com/ilyakaznacheev/cleanenv"
	"os"
	"sync"
	"time"
)

const defaultConfigPath = "config.yml"

type Config struct {
	IsDebug *bool         `yaml:"is_debug" env:"IS_DEBUG" env-required:"true"`
	Listen  Listener      `yaml:"listen"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	Cache   CacheConfig   `yaml:"cache"`
	Broker  BrokerConfig  `yaml:"broker"`
}

type Listener struct {
	BindIp       string        `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"PORT" env-default:"8000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"15s"`
}

type StorageConfig struct {
	Driver       string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Database     string `yaml:"database" env:"DB_NAME" env-default:"bookstore"`
	Username     string `yaml:"username" env:"DB_USER" env-default:"postgres"`
	Password     string `yaml:"password" env:"DB_PASS"`
	SSLMode      string `yaml:"ssl_mode" env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns int    `yaml:"max_open_conns" env-default:"10"`
}

type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" env-default:"session_token"`
	MaxAge     time.Duration `yaml:"max_age" env-default:"168h"`
	Secure     bool          `yaml:"secure" env:"SESSION_SECURE"`
}

// CacheConfig configures the redis session cache. Empty Addr disables it.
type CacheConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" env-default:"10m"`
}

// BrokerConfig configures the kafka producer. No brokers means events are not published.
type BrokerConfig struct {
	Brokers    []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	OrderTopic string   `yaml:"order_topic" env-default:"order.placed"`
}

func (c *Config) Debug() bool {
	return c.IsDebug != nil && *c.IsDebug
}

var instance *Config
var once sync.Once

func GetConfig() *Config {
	once.Do(func() {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = defaultConfigPath
		}
		logger.Log.Info("Reading app configuration from ", path)
		instance = &Config{}
		if err := cleanenv.ReadConfig(path, instance); err != nil {
			help, _ := cleanenv.GetDescription(instance, nil)
			logger.Log.Error(help)
			logger.Log.Fatal(err)
		}
	})
	return instance
}
