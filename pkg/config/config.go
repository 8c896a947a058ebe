package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	DB    DBConfig    `mapstructure:"db"`
	Redis RedisConfig `mapstructure:"redis"`
	Kafka KafkaConfig `mapstructure:"kafka"`
	MQ    MQConfig    `mapstructure:"mq"`
	Chain ChainConfig `mapstructure:"chain"`
	Cache CacheConfig `mapstructure:"cache"`
	Save  SaveConfig  `mapstructure:"save"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
	GrpcPort string `mapstructure:"grpc_port"`
	LogFile  string `mapstructure:"log_file"` // 为空只输出到控制台
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

type MQConfig struct {
	Type          string `mapstructure:"type"` // "redis", "kafka" or "memory"
	TxTopic       string `mapstructure:"tx_topic"`
	ReceiptTopic  string `mapstructure:"receipt_topic"`
	ConsumerGroup string `mapstructure:"consumer_group"`
}

type ChainConfig struct {
	RpcUrl         string        `mapstructure:"rpc_url"`
	Token          string        `mapstructure:"token"`   // mAsset 合约地址
	Savings        string        `mapstructure:"savings"` // 储蓄合约地址
	CreditDecimals int           `mapstructure:"credit_decimals"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type SaveConfig struct {
	DefaultVersion string `mapstructure:"default_version"` // v1 / v2
}

var Global Config

func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// 环境变量覆盖: CHAIN_RPC_URL -> chain.rpc_url
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")
	viper.SetDefault("app.grpc_port", "50051")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "savings_user")
	viper.SetDefault("db.password", "savings_password")
	viper.SetDefault("db.name", "savings_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	viper.SetDefault("mq.type", "redis")
	viper.SetDefault("mq.tx_topic", "savings_transactions")
	viper.SetDefault("mq.receipt_topic", "savings_receipts")
	viper.SetDefault("mq.consumer_group", "savings_core")

	viper.SetDefault("chain.rpc_url", "http://localhost:8545")
	viper.SetDefault("chain.credit_decimals", 18)
	viper.SetDefault("chain.poll_interval", 15*time.Second)

	viper.SetDefault("cache.ttl", 10*time.Second)

	viper.SetDefault("save.default_version", "v1")
}
