package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg globally accessible configuration
var Cfg *Config

// LoadConfig loads configs/config.yaml into Cfg. ORBIT_ prefixed env vars override the file.
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("orbit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("dashboard.timezone", "UTC")
	v.SetDefault("dashboard.cache_ttl", 300)
	v.SetDefault("dashboard.synced_ttl", 900)
	v.SetDefault("dashboard.top_posts", 10)
	v.SetDefault("dashboard.growth_estimator", "seeded")
	v.SetDefault("dashboard.rate_weight", 0.7)
	v.SetDefault("dashboard.volume_weight", 0.3)
	v.SetDefault("cron.dashboard_warm", "0 */5 * * * *")
	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 5)
}
