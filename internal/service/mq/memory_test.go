package mq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue(t *testing.T) {
	q := NewMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, q.Publish(ctx, "t", "k1", []byte("a")))
	require.NoError(t, q.Publish(ctx, "t", "k2", []byte("b")))

	got := make(chan *Message, 2)
	go func() {
		_ = q.Subscribe(ctx, "t", func(ctx context.Context, msg *Message) error {
			got <- msg
			return nil
		})
	}()

	for _, want := range []string{"a", "b"} {
		select {
		case msg := <-got:
			assert.Equal(t, want, string(msg.Payload))
			assert.Equal(t, "t", msg.Topic)
		case <-time.After(time.Second):
			t.Fatal("没有收到消息")
		}
	}
}
