package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Crypto    CryptoConfig    `mapstructure:"crypto"`
	Log       LogConfig       `mapstructure:"log"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Transfer  TransferConfig  `mapstructure:"transfer"`
	KYC       KYCConfig       `mapstructure:"kyc"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	RateCache RateCacheConfig `mapstructure:"rate_cache"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig configures validation of tokens issued by the identity provider.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type CryptoConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded XChaCha20-Poly1305 key
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// LedgerConfig selects the row store and the change feed transport.
type LedgerConfig struct {
	Driver             string  `mapstructure:"driver"`      // postgres, memory
	ChangeFeed         string  `mapstructure:"change_feed"` // postgres, redis, memory
	NotifyChannel      string  `mapstructure:"notify_channel"`
	RedisChannelPrefix string  `mapstructure:"redis_channel_prefix"`
	MemorySeedRate     float64 `mapstructure:"memory_seed_rate"`
}

type TransferConfig struct {
	CurrencyPair   string        `mapstructure:"currency_pair"`
	NetworkLabel   string        `mapstructure:"network_label"`
	SuccessDisplay time.Duration `mapstructure:"success_display"`
	HistoryLimit   int           `mapstructure:"history_limit"`
}

type KYCConfig struct {
	AtomicWrites bool `mapstructure:"atomic_writes"`
}

// WalletConfig describes the wallet bridge and the settlement chain.
type WalletConfig struct {
	RPCURL                 string   `mapstructure:"rpc_url"` // empty = no provider
	ChainID                string   `mapstructure:"chain_id"`
	ChainName              string   `mapstructure:"chain_name"`
	NativeCurrencyName     string   `mapstructure:"native_currency_name"`
	NativeCurrencySymbol   string   `mapstructure:"native_currency_symbol"`
	NativeCurrencyDecimals int      `mapstructure:"native_currency_decimals"`
	RPCURLs                []string `mapstructure:"rpc_urls"`
	ExplorerURLs           []string `mapstructure:"explorer_urls"`
}

type KafkaConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	Brokers       []string `mapstructure:"brokers"`
	TransferTopic string   `mapstructure:"transfer_topic"`
	KYCTopic      string   `mapstructure:"kyc_topic"`
}

type RateCacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CBR_ (Cross-Border Remit).
// Nested keys use underscore: CBR_DATABASE_HOST, CBR_TRANSFER_CURRENCY_PAIR, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "remittance")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "crossborder-remit")
	v.SetDefault("crypto.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ledger.driver", "postgres")
	v.SetDefault("ledger.change_feed", "postgres")
	v.SetDefault("ledger.notify_channel", "ledger_changes")
	v.SetDefault("ledger.redis_channel_prefix", "ledger:")
	v.SetDefault("ledger.memory_seed_rate", 0)
	v.SetDefault("transfer.currency_pair", "INR_USD")
	v.SetDefault("transfer.network_label", "Polygon")
	v.SetDefault("transfer.success_display", "5s")
	v.SetDefault("transfer.history_limit", 20)
	v.SetDefault("kyc.atomic_writes", false)
	v.SetDefault("wallet.rpc_url", "")
	v.SetDefault("wallet.chain_id", "0x89")
	v.SetDefault("wallet.chain_name", "Polygon Mainnet")
	v.SetDefault("wallet.native_currency_name", "MATIC")
	v.SetDefault("wallet.native_currency_symbol", "MATIC")
	v.SetDefault("wallet.native_currency_decimals", 18)
	v.SetDefault("wallet.rpc_urls", []string{"https://polygon-rpc.com/"})
	v.SetDefault("wallet.explorer_urls", []string{"https://polygonscan.com/"})
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.transfer_topic", "transfers.requested")
	v.SetDefault("kafka.kyc_topic", "kyc.submitted")
	v.SetDefault("rate_cache.ttl", "30s")
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CBR_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CBR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("invalid ledger.driver %q: must be postgres or memory", c.Ledger.Driver)
	}
	switch c.Ledger.ChangeFeed {
	case "postgres", "redis", "memory":
	default:
		return fmt.Errorf("invalid ledger.change_feed %q: must be postgres, redis or memory", c.Ledger.ChangeFeed)
	}
	if c.Ledger.ChangeFeed == "postgres" && c.Ledger.Driver != "postgres" {
		return fmt.Errorf("ledger.change_feed postgres requires ledger.driver postgres")
	}
	if c.Ledger.ChangeFeed == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("ledger.change_feed redis requires redis.enabled")
	}
	if c.Transfer.HistoryLimit <= 0 {
		return fmt.Errorf("transfer.history_limit must be positive")
	}
	return nil
}
