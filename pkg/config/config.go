package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config global configuration shared by the API server and the worker
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Storage     StorageConfig   `mapstructure:"storage"`
	MySQL       MySQLConfig     `mapstructure:"mysql"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Lmstfy      LmstfyConfig    `mapstructure:"lmstfy"`
	Engine      EngineConfig    `mapstructure:"engine"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Workers     []WorkerConfig  `mapstructure:"workers"`
	CatalogSeed []RetailerSeed  `mapstructure:"catalog_seed"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// StorageConfig selects the persistence backend: mysql or memory
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type MySQLConfig struct {
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CartTTL  time.Duration `mapstructure:"cart_ttl"`
}

type LmstfyConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Namespace  string `mapstructure:"namespace"`
	Token      string `mapstructure:"token"`
	StockQueue string `mapstructure:"stock_queue"`
}

// EngineConfig tunes matching and pricing
type EngineConfig struct {
	CurrencyPrecision int32   `mapstructure:"currency_precision"`
	MatchThreshold    float64 `mapstructure:"match_threshold"`
	SuggestFloor      float64 `mapstructure:"suggest_floor"`
	MaxAlternatives   int     `mapstructure:"max_alternatives"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// WorkerConfig one queue worker pool
type WorkerConfig struct {
	Name       string           `mapstructure:"name"`
	QueueName  string           `mapstructure:"queue_name"`
	Subscriber SubscriberConfig `mapstructure:"subscriber"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
}

type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`
	Rate         time.Duration `mapstructure:"rate"`
	Timeout      time.Duration `mapstructure:"timeout"`
	TTR          time.Duration `mapstructure:"ttr"`
	ErrorBackoff time.Duration `mapstructure:"error_backoff"`
}

type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`
	BufferSize int           `mapstructure:"buffer_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RetailerSeed catalog rows loaded into the memory driver
type RetailerSeed struct {
	RetailerID string     `mapstructure:"retailer_id"`
	Items      []ItemSeed `mapstructure:"items"`
}

type ItemSeed struct {
	Name          string  `mapstructure:"name"`
	Unit          string  `mapstructure:"unit"`
	Category      string  `mapstructure:"category"`
	StockQty      float64 `mapstructure:"stock_qty"`
	UnitPrice     float64 `mapstructure:"unit_price"`
	MinStockLevel float64 `mapstructure:"min_stock_level"`
}

// Load reads the YAML file at configPath; a .env file next to the binary and
// RETAILOS_* environment variables override file values.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("RETAILOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "retailos")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("server.port", "8080")
	v.SetDefault("storage.driver", "mysql")
	v.SetDefault("redis.cart_ttl", 24*time.Hour)
	v.SetDefault("lmstfy.port", 7777)
	v.SetDefault("lmstfy.stock_queue", "stock_check")
	v.SetDefault("engine.currency_precision", 2)
	v.SetDefault("engine.match_threshold", 0.75)
	v.SetDefault("engine.suggest_floor", 0.5)
	v.SetDefault("engine.max_alternatives", 3)
	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)
}

// ValidateAPI checks what the API server needs
func (c *Config) ValidateAPI() error {
	switch c.Storage.Driver {
	case "memory":
	case "mysql":
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql.dsn is required")
		}
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required")
		}
	default:
		return fmt.Errorf("unsupported storage.driver: %q", c.Storage.Driver)
	}
	if c.Engine.MatchThreshold <= 0 || c.Engine.MatchThreshold > 1 {
		return fmt.Errorf("engine.match_threshold must be in (0, 1]")
	}
	if c.Engine.CurrencyPrecision < 0 {
		return fmt.Errorf("engine.currency_precision must be >= 0")
	}
	return nil
}

// ValidateWorker checks what the queue worker needs
func (c *Config) ValidateWorker() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	return nil
}

// LmstfyEnabled reports whether post-commit jobs should be published
func (c *Config) LmstfyEnabled() bool {
	return c.Lmstfy.Host != "" && c.Lmstfy.Namespace != ""
}
