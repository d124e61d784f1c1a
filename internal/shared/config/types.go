package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"required,gt=0,lte=65535"`
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"required,gt=0,lte=65535"`
	Username        string `mapstructure:"username" validate:"required"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	PortalURL    string `mapstructure:"portal_url"`
}

type SMSConfig struct {
	GatewayURL string `mapstructure:"gateway_url"`
	APIKey     string `mapstructure:"api_key"`
	From       string `mapstructure:"from"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RetentionConfig holds the tuning knobs for churn scoring and retention
// sweeps. Defaults match the documented campaign rules; changing thresholds
// here changes band assignment for every subsequent sweep.
type RetentionConfig struct {
	RescoreIntervalMinutes int     `mapstructure:"rescore_interval_minutes" validate:"gt=0"`
	CampaignIntervalHours  int     `mapstructure:"campaign_interval_hours" validate:"gt=0"`
	HighRiskThreshold      float64 `mapstructure:"high_risk_threshold" validate:"gte=0,lte=100"`
	CriticalThreshold      float64 `mapstructure:"critical_threshold" validate:"gte=0,lte=100,gtefield=HighRiskThreshold"`
	CampaignBatchLimit     int     `mapstructure:"campaign_batch_limit" validate:"gt=0"`
	LifetimeValueThreshold float64 `mapstructure:"lifetime_value_threshold" validate:"gte=0"`
	DiscountAmount         float64 `mapstructure:"discount_amount" validate:"gt=0"`
	CreditAmount           float64 `mapstructure:"credit_amount" validate:"gt=0"`
	CooldownDays           int     `mapstructure:"cooldown_days" validate:"gt=0"`
	BookingWindowDays      int     `mapstructure:"booking_window_days" validate:"gt=0"`
}

type BiztimeConfig struct {
	Timezone string `mapstructure:"timezone"`
}
