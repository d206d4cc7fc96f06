package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	AdminKey        string        `mapstructure:"ADMIN_KEY"`
	AppointmentsURL string        `mapstructure:"APPOINTMENTS_URL"`
	SessionBackend  string        `mapstructure:"SESSION_BACKEND"` // memory|redis|postgres
	SessionTTL      time.Duration `mapstructure:"SESSION_TTL"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	AnalyticsSink   string        `mapstructure:"ANALYTICS_SINK"` // log|postgres|off
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	TenantID        string        `mapstructure:"TENANT_ID"`
	TenantTimezone  string        `mapstructure:"TENANT_TIMEZONE"`
	BusinessOpen    string        `mapstructure:"BUSINESS_OPEN"`
	BusinessClose   string        `mapstructure:"BUSINESS_CLOSE"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("ANALYTICS_SINK", "log")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("TENANT_ID", "cabinet-alger-01")
	v.SetDefault("TENANT_TIMEZONE", "Africa/Algiers")
	v.SetDefault("BUSINESS_OPEN", "08:00")
	v.SetDefault("BUSINESS_CLOSE", "18:00")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
