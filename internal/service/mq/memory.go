package mq

import (
	"context"
	"strconv"
	"sync"
)

// MemoryQueue 进程内队列，同时实现 Producer 和 Consumer
// 用于单元测试和没有 Redis/Kafka 的本地调试
type MemoryQueue struct {
	mu     sync.Mutex
	seq    int
	topics map[string]chan *Message
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{topics: make(map[string]chan *Message)}
}

func (q *MemoryQueue) channel(topic string) chan *Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	ch, ok := q.topics[topic]
	if !ok {
		ch = make(chan *Message, 256)
		q.topics[topic] = ch
	}
	return ch
}

func (q *MemoryQueue) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	q.mu.Lock()
	q.seq++
	id := strconv.Itoa(q.seq)
	q.mu.Unlock()

	msg := &Message{ID: id, Topic: topic, Key: key, Payload: append([]byte(nil), payload...)}
	select {
	case q.channel(topic) <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe 处理失败的消息直接丢弃 (没有重投)
func (q *MemoryQueue) Subscribe(ctx context.Context, topic string, handler Handler) error {
	ch := q.channel(topic)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-ch:
			_ = handler(ctx, msg)
		}
	}
}

func (q *MemoryQueue) Close() error {
	return nil
}
