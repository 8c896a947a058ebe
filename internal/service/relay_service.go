package service

import (
	"context"
	"time"

	"savings-core/internal/service/mq"
	"savings-core/pkg/logger"

	"go.uber.org/zap"
)

// RelayService 负责将本地消息表的消息搬运到 MQ
type RelayService struct {
	repo      TransactionRepository
	producer  mq.Producer
	interval  time.Duration
	batchSize int
}

func NewRelayService(repo TransactionRepository, producer mq.Producer) *RelayService {
	return &RelayService{
		repo:      repo,
		producer:  producer,
		interval:  500 * time.Millisecond, // 500ms 轮询一次
		batchSize: 50,                     // 每次取 50 条，避免内存爆炸
	}
}

func (s *RelayService) Start(ctx context.Context) {
	logger.Info("[Relay] 启动消息中继服务")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("[Relay] 停止服务")
			return
		case <-ticker.C:
			s.ProcessPending(ctx)
		}
	}
}

// ProcessPending 发送一批 Pending 消息，返回成功投递的条数
func (s *RelayService) ProcessPending(ctx context.Context) int {
	messages, err := s.repo.PendingOutbox(ctx, s.batchSize)
	if err != nil {
		logger.Error("[Relay] 查询消息失败", zap.Error(err))
		return 0
	}
	if len(messages) == 0 {
		return 0
	}

	logger.Debug("[Relay] 发现待发送消息", zap.Int("count", len(messages)))

	sent := 0
	for _, msg := range messages {
		// Key 是储户地址，同一账户的交易进入同一分区
		if err := s.producer.Publish(ctx, msg.Topic, msg.Key, msg.Payload); err != nil {
			logger.Warn("[Relay] 发送消息失败", zap.Uint64("id", msg.ID), zap.Error(err))
			continue
		}

		// 只有发送成功了才更新状态 => At-least-once (至少一次投递)
		// 如果这里更新失败，下次还会发，Consumer 需做好幂等 (manifest_id)
		if err := s.repo.MarkSent(ctx, msg.ID); err != nil {
			logger.Error("[Relay] 更新状态失败", zap.Uint64("id", msg.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}
