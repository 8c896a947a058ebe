package marketdata

import (
	"context"
	"time"

	"savings-core/internal/save"
	"savings-core/pkg/cache"
	"savings-core/pkg/crypto_util"
	"savings-core/pkg/logger"

	"go.uber.org/zap"
)

// CachedProvider 行情缓存装饰器
// 多个表单会话查询同一个账户时只打一次 RPC
type CachedProvider struct {
	next  Provider
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedProvider(next Provider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: c, ttl: ttl}
}

func (p *CachedProvider) Fetch(ctx context.Context, q Query) (*save.MarketData, error) {
	key := cacheKey(q)

	var cached save.MarketData
	if err := p.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	data, err := p.next.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
		logger.Warn("行情写入缓存失败", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

func cacheKey(q Query) string {
	return "savings:market:" + crypto_util.CalculateBlake3([]byte(q.Account+"|"+q.Token+"|"+q.Savings))
}
