package main

import (
	"context"
	"io"
	"os"
	"time"

	"savings-core/internal/marketdata"
	"savings-core/internal/model"
	"savings-core/internal/save"
	"savings-core/internal/server"
	"savings-core/internal/service"
	"savings-core/internal/service/mq"
	"savings-core/pkg/cache"
	"savings-core/pkg/config"
	"savings-core/pkg/database"
	"savings-core/pkg/logger"
	"savings-core/pkg/monitor"
	"savings-core/pkg/validator"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "savings-core/docs/swagger"
)

// startupTimeout 启动时等待依赖服务就绪的最长时间
const startupTimeout = 30 * time.Second

// @title Savings Core API
// @version 1.0
// @description mAsset savings deposit/withdraw form service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
func main() {
	// 0. 初始化 Config
	config.Init()
	cfg := config.Global

	// 1. 初始化 Logger / 校验器 / 监控
	logger.Init(cfg.App.Env, cfg.App.LogFile)
	defer logger.Sync()
	validator.Init()
	monitor.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. 连接 Redis (L2 缓存 + Redis Streams)
	var rdb *redis.Client
	err := database.Retry(ctx, "redis", startupTimeout, func() error {
		var err error
		rdb, err = database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		return err
	})
	if err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}

	// 3. 交易日志存储
	db, repo := openRepository(ctx, cfg)

	// 4. 行情: 链上 eth_call + 两级缓存
	eth, err := ethclient.DialContext(ctx, cfg.Chain.RpcUrl)
	if err != nil {
		logger.Fatal("连接以太坊节点失败", zap.String("rpc", cfg.Chain.RpcUrl), zap.Error(err))
	}
	chainProvider, err := marketdata.NewEthProvider(eth, cfg.Chain.CreditDecimals)
	if err != nil {
		logger.Fatal("初始化行情服务失败", zap.Error(err))
	}
	marketCache := cache.NewMultiLevelCache(cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL), cache.NewRedisCache(rdb))
	provider := marketdata.NewCachedProvider(chainProvider, marketCache, cfg.Cache.TTL)

	// 5. 消息队列
	producer, consumer := openQueue(cfg, rdb)

	// 6. 业务服务
	defaultVersion, err := save.ParseVersion(cfg.Save.DefaultVersion, save.V1)
	if err != nil {
		logger.Fatal("save.default_version 配置错误", zap.Error(err))
	}
	sessions := service.NewSessionService(service.SessionConfig{
		Token:          cfg.Chain.Token,
		Savings:        cfg.Chain.Savings,
		PollInterval:   cfg.Chain.PollInterval,
		DefaultVersion: defaultVersion,
		TxTopic:        cfg.MQ.TxTopic,
	}, provider, repo)

	relay := service.NewRelayService(repo, producer)
	go relay.Start(ctx)

	receipts := service.NewReceiptService(repo, consumer, cfg.MQ.ReceiptTopic)
	go func() {
		if err := receipts.Start(ctx); err != nil {
			logger.Error("回执消费退出", zap.Error(err))
		}
	}()

	// 7. HTTP + gRPC
	app, err := server.New(server.Config{
		HttpPort: cfg.App.HttpPort,
		GrpcPort: cfg.App.GrpcPort,
	}, server.NewHTTPRouter(sessions), server.NewGRPCServer(sessions))
	if err != nil {
		logger.Fatal("应用启动失败", zap.Error(err))
	}

	// 8. 退出后资源清理
	app.OnShutdown(func() {
		sessions.Shutdown()
		cancel()
		_ = consumer.Close()
		if c, ok := producer.(io.Closer); ok {
			_ = c.Close()
		}
		eth.Close()
		if db != nil {
			logger.Info("正在关闭数据库连接...")
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		_ = rdb.Close()
	})

	// 运行 (阻塞)
	app.Run(ctx)
	logger.Info("系统已退出")
}

// openRepository db.host 为空时使用内存存储 (仅本地调试)
func openRepository(ctx context.Context, cfg config.Config) (*gorm.DB, service.TransactionRepository) {
	if cfg.DB.Host == "" {
		logger.Warn("未配置数据库，交易日志只保存在内存中")
		return nil, service.NewMemoryTransactionRepository()
	}

	dsn := database.PostgresDSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	var db *gorm.DB
	err := database.Retry(ctx, "postgres", startupTimeout, func() error {
		var err error
		db, err = database.ConnectPostgres(dsn, cfg.App.Env == "development")
		return err
	})
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	if cfg.App.Env == "development" {
		logger.Info("开发环境: 尝试自动迁移 Schema (GORM AutoMigrate)...")
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("数据库自动迁移失败", zap.Error(err))
		}
	} else {
		logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
	}
	return db, service.NewGormTransactionRepository(db)
}

func openQueue(cfg config.Config, rdb *redis.Client) (mq.Producer, mq.Consumer) {
	switch cfg.MQ.Type {
	case "kafka":
		logger.Info("使用 Kafka 作为消息队列...", zap.Strings("brokers", cfg.Kafka.Brokers))
		return mq.NewKafkaProducer(cfg.Kafka.Brokers), mq.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.MQ.ConsumerGroup)
	case "memory":
		logger.Warn("使用进程内队列，交易不会离开本进程")
		q := mq.NewMemoryQueue()
		return q, q
	default:
		logger.Info("使用 Redis Streams 作为消息队列...")
		consumerName, _ := os.Hostname()
		if consumerName == "" {
			consumerName = cfg.MQ.ConsumerGroup + "-0"
		}
		return mq.NewRedisProducer(rdb), mq.NewRedisConsumer(rdb, cfg.MQ.ConsumerGroup, consumerName)
	}
}
