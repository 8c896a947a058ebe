package marketdata

import (
	"context"
	"errors"

	"savings-core/internal/save"
)

var ErrInvalidAddress = errors.New("marketdata: invalid address")

// Query 定位一份行情: 储户地址 + mAsset 合约 + 储蓄合约
type Query struct {
	Account string `json:"account"`
	Token   string `json:"token"`
	Savings string `json:"savings"`
}

// Provider 外部行情数据来源
// 返回的快照只读，调用方不能修改
type Provider interface {
	Fetch(ctx context.Context, q Query) (*save.MarketData, error)
}
