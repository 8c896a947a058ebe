package marketdata

import (
	"context"
	"time"

	"savings-core/internal/save"
	"savings-core/pkg/logger"
	"savings-core/pkg/monitor"

	"go.uber.org/zap"
)

// Dispatcher 接收行情更新的一方 (通常是 *save.Store)
type Dispatcher interface {
	Dispatch(ctx context.Context, a save.Action) (save.State, error)
}

// Poller 定时拉取行情，作为普通 Action 投递进 Store 的队列
type Poller struct {
	provider Provider
	query    Query
	target   Dispatcher
	interval time.Duration
}

func NewPoller(provider Provider, query Query, target Dispatcher, interval time.Duration) *Poller {
	return &Poller{
		provider: provider,
		query:    query,
		target:   target,
		interval: interval,
	}
}

// Run 立即拉取一次，之后每个 interval 拉取一次，直到 ctx 取消
// 拉取失败只记录日志，保留旧快照，下个周期重试
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("拉取行情失败",
				zap.String("account", p.query.Account),
				zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll 拉取一次并投递
func (p *Poller) Poll(ctx context.Context) error {
	start := time.Now()
	data, err := p.provider.Fetch(ctx, p.query)
	if m := monitor.Business; m != nil {
		m.MarketDataDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			m.MarketDataErrors.WithLabelValues("poller").Inc()
		}
	}
	if err != nil {
		return err
	}

	_, err = p.target.Dispatch(ctx, save.ReceiveMarketData{Data: data})
	return err
}
