package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"savings-core/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisProducer 基于 Redis Streams 的生产者
type RedisProducer struct {
	client *redis.Client
}

func NewRedisProducer(client *redis.Client) *RedisProducer {
	return &RedisProducer{client: client}
}

// Publish XADD <topic> * key <key> payload <payload>
func (p *RedisProducer) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		Values: map[string]interface{}{
			"key":     key,
			"payload": payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("redis xadd error: %w", err)
	}
	return nil
}

// RedisConsumer 基于 Redis Streams Consumer Group 的消费者
type RedisConsumer struct {
	client *redis.Client
	group  string
	name   string
}

func NewRedisConsumer(client *redis.Client, group, name string) *RedisConsumer {
	return &RedisConsumer{
		client: client,
		group:  group,
		name:   name,
	}
}

func (c *RedisConsumer) Subscribe(ctx context.Context, topic string, handler Handler) error {
	// XGROUP CREATE <stream> <group> $ MKSTREAM
	err := c.client.XGroupCreateMkStream(ctx, topic, c.group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("创建消费者组失败: %w", err)
	}

	logger.Info("Redis MQ 开始监听", zap.String("topic", topic), zap.String("group", c.group))

	for {
		if ctx.Err() != nil {
			return nil
		}

		// XREADGROUP GROUP <group> <consumer> BLOCK 2000 COUNT 10 STREAMS <topic> >
		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.name,
			Streams:  []string{topic, ">"},
			Count:    10,
			Block:    2 * time.Second,
		}).Result()

		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("Redis MQ 读取消息错误", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, xMessage := range stream.Messages {
				c.handle(ctx, topic, xMessage, handler)
			}
		}
	}
}

func (c *RedisConsumer) handle(ctx context.Context, topic string, xMessage redis.XMessage, handler Handler) {
	payload, ok := xMessage.Values["payload"].(string)
	if !ok {
		logger.Warn("Redis MQ 消息格式错误: payload 缺失", zap.String("id", xMessage.ID))
		c.ack(ctx, topic, xMessage.ID)
		return
	}
	key, _ := xMessage.Values["key"].(string)

	msg := &Message{
		ID:      xMessage.ID,
		Topic:   topic,
		Key:     key,
		Payload: []byte(payload),
	}
	if err := handler(ctx, msg); err != nil {
		// 不 ACK，留在 PEL 中等待重新投递
		logger.Error("Redis MQ 消息处理失败", zap.String("id", xMessage.ID), zap.Error(err))
		return
	}
	c.ack(ctx, topic, xMessage.ID)
}

func (c *RedisConsumer) ack(ctx context.Context, topic, id string) {
	if err := c.client.XAck(ctx, topic, c.group, id).Err(); err != nil {
		logger.Warn("Redis MQ ACK 失败", zap.String("id", id), zap.Error(err))
	}
}

// Close Redis 客户端由 main 统一关闭
func (c *RedisConsumer) Close() error {
	return nil
}
