package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"savings-core/internal/model"
	"savings-core/internal/service/mq"
	"savings-core/pkg/logger"
	"savings-core/pkg/monitor"

	"go.uber.org/zap"
)

// Receipt 广播方回传的交易回执
type Receipt struct {
	ManifestID string `json:"manifest_id"`
	Status     string `json:"status"` // SUBMITTED, CONFIRMED, FAILED
	TxHash     string `json:"tx_hash"`
}

var ErrInvalidReceipt = errors.New("invalid receipt")

// ReceiptService 消费回执主题，更新交易日志状态
type ReceiptService struct {
	repo     TransactionRepository
	consumer mq.Consumer
	topic    string
}

func NewReceiptService(repo TransactionRepository, consumer mq.Consumer, topic string) *ReceiptService {
	return &ReceiptService{repo: repo, consumer: consumer, topic: topic}
}

// Start 阻塞直到 ctx 取消
func (s *ReceiptService) Start(ctx context.Context) error {
	logger.Info("[Receipt] 开始消费回执", zap.String("topic", s.topic))
	return s.consumer.Subscribe(ctx, s.topic, s.Handle)
}

// Handle 处理单条回执
// 格式错误、未知交易和过期回执直接确认丢弃，避免毒消息反复投递；数据库错误返回 error 等待重投
func (s *ReceiptService) Handle(ctx context.Context, msg *mq.Message) error {
	r, err := parseReceipt(msg.Payload)
	if err != nil {
		logger.Warn("[Receipt] 丢弃无效回执", zap.String("id", msg.ID), zap.Error(err))
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, r.ManifestID, r.Status, r.TxHash); err != nil {
		if errors.Is(err, ErrLogNotFound) {
			logger.Warn("[Receipt] 未知交易", zap.String("manifest_id", r.ManifestID))
			return nil
		}
		if errors.Is(err, ErrStaleStatus) {
			logger.Info("[Receipt] 忽略过期回执",
				zap.String("manifest_id", r.ManifestID),
				zap.String("status", r.Status))
			return nil
		}
		return err
	}

	if m := monitor.Business; m != nil {
		m.ReceiptsTotal.WithLabelValues(r.Status).Inc()
	}
	logger.Info("[Receipt] 交易状态更新",
		zap.String("manifest_id", r.ManifestID),
		zap.String("status", r.Status),
		zap.String("tx_hash", r.TxHash))
	return nil
}

func parseReceipt(payload []byte) (*Receipt, error) {
	var r Receipt
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}
	if r.ManifestID == "" {
		return nil, fmt.Errorf("%w: missing manifest_id", ErrInvalidReceipt)
	}
	switch r.Status {
	case model.TxStatusSubmitted, model.TxStatusConfirmed, model.TxStatusFailed:
	default:
		return nil, fmt.Errorf("%w: status %q", ErrInvalidReceipt, r.Status)
	}
	return &r, nil
}
