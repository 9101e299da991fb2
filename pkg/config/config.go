package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the custody server configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Solana   SolanaConfig   `mapstructure:"solana"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Fees     FeeConfig      `mapstructure:"fees"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// SolanaConfig contains Solana RPC client settings
type SolanaConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	Commitment          string        `mapstructure:"commitment"`
	ConfirmTimeout      time.Duration `mapstructure:"confirm_timeout"`
	ConfirmPollInterval time.Duration `mapstructure:"confirm_poll_interval"`
}

// WalletConfig contains campaign wallet provisioning settings
type WalletConfig struct {
	// PlatformWallet receives skimmed platform fees.
	PlatformWallet string `mapstructure:"platform_wallet"`
	// AdminWallet may authorize campaign mutations in place of the creator.
	AdminWallet string `mapstructure:"admin_wallet"`
	// MasterKeyEnv names the environment variable holding the base64
	// AES-256 master key used to encrypt campaign secret keys at rest.
	MasterKeyEnv      string `mapstructure:"master_key_env"`
	VanityEnabled     bool   `mapstructure:"vanity_enabled"`
	VanitySuffix      string `mapstructure:"vanity_suffix"`
	VanityMaxAttempts int    `mapstructure:"vanity_max_attempts"`
}

// FeeConfig contains fee skimming settings
type FeeConfig struct {
	// Rate is the platform fee as a fraction of newly received funds
	// (0.01 = 1%).
	Rate float64 `mapstructure:"rate"`
	// MinFeeThreshold is the smallest fee, in lamports, worth a transfer.
	MinFeeThreshold int64 `mapstructure:"min_fee_threshold"`
	// NetworkFeeReserve is kept back on redemption to pay the transfer fee.
	NetworkFeeReserve int64         `mapstructure:"network_fee_reserve"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	BatchSize         int           `mapstructure:"batch_size"`
}

// SyncConfig contains donation ingestion settings
type SyncConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Interval       time.Duration `mapstructure:"interval"`
	SignatureLimit int           `mapstructure:"signature_limit"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.database", "custody")

	// Solana defaults
	viper.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	viper.SetDefault("solana.commitment", "confirmed")
	viper.SetDefault("solana.confirm_timeout", "60s")
	viper.SetDefault("solana.confirm_poll_interval", "2s")

	// Wallet defaults
	viper.SetDefault("wallet.master_key_env", "CUSTODY_MASTER_KEY")
	viper.SetDefault("wallet.vanity_enabled", false)
	viper.SetDefault("wallet.vanity_max_attempts", 50000)

	// Fee defaults
	viper.SetDefault("fees.rate", 0.01)
	viper.SetDefault("fees.min_fee_threshold", 1000000)
	viper.SetDefault("fees.network_fee_reserve", 5000)
	viper.SetDefault("fees.poll_interval", "30s")
	viper.SetDefault("fees.batch_size", 10)

	// Sync defaults
	viper.SetDefault("sync.enabled", true)
	viper.SetDefault("sync.interval", "30s")
	viper.SetDefault("sync.signature_limit", 20)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "stdout")
}

func validate(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if config.Solana.RPCURL == "" {
		return fmt.Errorf("solana.rpc_url is required")
	}
	if config.Wallet.PlatformWallet == "" {
		return fmt.Errorf("wallet.platform_wallet is required")
	}
	if config.Fees.Rate < 0 || config.Fees.Rate >= 1 {
		return fmt.Errorf("fees.rate must be in [0, 1)")
	}
	return nil
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
