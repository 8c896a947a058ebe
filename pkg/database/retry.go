package database

import (
	"context"
	"time"

	"savings-core/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Retry 指数退避重试 op，直到成功、累计超过 maxElapsed 或 ctx 取消
// 用于启动阶段等待 Postgres / Redis 就绪 (docker compose 同时拉起时很常见)
func Retry(ctx context.Context, target string, maxElapsed time.Duration, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed

	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		logger.Warn("连接失败，稍后重试",
			zap.String("target", target),
			zap.Duration("wait", wait),
			zap.Error(err))
	})
}
