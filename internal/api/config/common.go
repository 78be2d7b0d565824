package config

// Config root configuration
type Config struct {
	Server             ServerConfig       `mapstructure:"server"`
	DB                 DBConfig           `mapstructure:"database"`
	Redis              RedisConfig        `mapstructure:"redis"`
	Logstash           LogstashConfig     `mapstructure:"logstash"`
	Dashboard          DashboardConfig    `mapstructure:"dashboard"`
	Cron               CronConfig         `mapstructure:"cron"`
	Kafka              KafkaConfig        `mapstructure:"kafka"`
	KafkaCanalConsumer KafkaCanalConsumer `mapstructure:"kafka_canal_consumer"`
}

// ServerConfig Server configuration
type ServerConfig struct {
	Port int `mapstructure:"port"`
	// AllowOrigins CORS whitelist, empty echoes any origin
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DBConfig database connection pool
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig remote log sink, disabled when Address is empty
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// DashboardConfig analytics engine and response cache
type DashboardConfig struct {
	Timezone        string  `mapstructure:"timezone"`
	CacheTTL        int     `mapstructure:"cache_ttl"`  // seconds
	SyncedTTL       int     `mapstructure:"synced_ttl"` // seconds
	TopPosts        int     `mapstructure:"top_posts"`
	GrowthEstimator string  `mapstructure:"growth_estimator"` // seeded | snapshot
	RateWeight      float64 `mapstructure:"rate_weight"`
	VolumeWeight    float64 `mapstructure:"volume_weight"`
}

// CronConfig job schedules, robfig/cron spec with seconds
type CronConfig struct {
	DashboardWarm string `mapstructure:"dashboard_warm"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaCanalConsumer binlog topic carrying posts, post_analytics and social_accounts changes
type KafkaCanalConsumer struct {
	Enable  bool   `mapstructure:"enable"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
