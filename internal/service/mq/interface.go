package mq

import "context"

// Message 代表一条通用的业务消息
type Message struct {
	ID      string // 消息ID (Redis Stream ID / Kafka offset)
	Topic   string
	Key     string // 分区键，例如储户地址
	Payload []byte // 消息体 (JSON)
}

// Handler 消息处理函数，返回 error 表示处理失败 (不 ACK)
type Handler func(ctx context.Context, msg *Message) error

// Producer 生产者接口
type Producer interface {
	// Publish 发送消息
	// key: 分区键，同一个账户的交易保持顺序；传空字符串则随机分区
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

// Consumer 消费者接口
type Consumer interface {
	// Subscribe 订阅主题，阻塞直到 ctx 取消
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
