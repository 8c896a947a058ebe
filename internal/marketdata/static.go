package marketdata

import (
	"context"
	"sync"
	"time"

	"savings-core/internal/save"
)

// StaticProvider 内存行情，用于开发环境和测试
type StaticProvider struct {
	mu    sync.RWMutex
	data  save.MarketData
	err   error
	calls int
}

func NewStaticProvider(data save.MarketData) *StaticProvider {
	return &StaticProvider{data: data}
}

// Set 替换快照
func (p *StaticProvider) Set(data save.MarketData) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = data
}

// Fail 之后的 Fetch 都返回 err，传 nil 恢复
func (p *StaticProvider) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Calls 返回 Fetch 被调用的次数
func (p *StaticProvider) Calls() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.calls
}

func (p *StaticProvider) Fetch(ctx context.Context, q Query) (*save.MarketData, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}

	data := p.data
	data.Account = q.Account
	data.FetchedAt = time.Now().UTC()
	return &data, nil
}
