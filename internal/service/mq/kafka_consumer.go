package mq

import (
	"context"
	"fmt"
	"time"

	"savings-core/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaConsumer 实现 Consumer 接口
type KafkaConsumer struct {
	brokers []string
	groupID string
	reader  *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string) *KafkaConsumer {
	return &KafkaConsumer{
		brokers: brokers,
		groupID: groupID,
	}
}

// Subscribe 订阅 Kafka 主题，阻塞直到 ctx 取消
// 处理成功后才提交 Offset (at-least-once)
func (c *KafkaConsumer) Subscribe(ctx context.Context, topic string, handler Handler) error {
	if c.reader != nil {
		return fmt.Errorf("kafka consumer 已经订阅了 %s", c.reader.Config().Topic)
	}
	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.brokers,
		GroupID:     c.groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	defer c.reader.Close()

	logger.Info("Kafka MQ 开始监听", zap.String("topic", topic), zap.String("group", c.groupID))

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("Kafka MQ 读取消息错误", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		msg := &Message{
			ID:      fmt.Sprintf("%d-%d", m.Partition, m.Offset),
			Topic:   topic,
			Key:     string(m.Key),
			Payload: m.Value,
		}

		if err := handler(ctx, msg); err != nil {
			// Kafka 不支持单条 Nack，不提交 Offset，重启后从该位置重新消费
			logger.Error("Kafka MQ 业务处理失败", zap.String("id", msg.ID), zap.Error(err))
			continue
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			logger.Warn("Kafka MQ 提交 Offset 失败", zap.Error(err))
		}
	}
}

func (c *KafkaConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
