package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/hearth-labs/hearth/internal/shared/config"
	"github.com/hearth-labs/hearth/internal/shared/utils"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	SMS       sharedConfig.SMSConfig       `mapstructure:"sms"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Retention sharedConfig.RetentionConfig `mapstructure:"retention"`
	Biztime   sharedConfig.BiztimeConfig   `mapstructure:"biztime"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("HEARTH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := utils.ValidateStruct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "hearth_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Email defaults
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "care@hearth.local")
	viper.SetDefault("email.from_name", "Hearth Home Care")
	viper.SetDefault("email.portal_url", "http://localhost:3000")

	// SMS gateway defaults (empty URL disables the sender)
	viper.SetDefault("sms.gateway_url", "")
	viper.SetDefault("sms.api_key", "")
	viper.SetDefault("sms.from", "Hearth")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Retention defaults
	viper.SetDefault("retention.rescore_interval_minutes", 60)
	viper.SetDefault("retention.campaign_interval_hours", 24)
	viper.SetDefault("retention.high_risk_threshold", 60.0)
	viper.SetDefault("retention.critical_threshold", 80.0)
	viper.SetDefault("retention.campaign_batch_limit", 50)
	viper.SetDefault("retention.lifetime_value_threshold", 500.0)
	viper.SetDefault("retention.discount_amount", 25.0)
	viper.SetDefault("retention.credit_amount", 50.0)
	viper.SetDefault("retention.cooldown_days", 7)
	viper.SetDefault("retention.booking_window_days", 60)

	// Business timezone
	viper.SetDefault("biztime.timezone", "America/New_York")
}
