package service

import (
	"context"

	"savings-core/internal/save"
)

// SaveService 储蓄表单会话接口，HTTP 和 gRPC 两个入口共用
type SaveService interface {
	Create(ctx context.Context, account, version string) (*Session, error)
	Get(id string) (*Session, error)
	Dispatch(ctx context.Context, id string, a save.Action) (save.State, error)
	Close(id string) error
	Submit(ctx context.Context, id string) (*SubmitResult, error)
	Approve(ctx context.Context, id string) (*SubmitResult, error)
	History(ctx context.Context, id string) ([]TransactionView, error)
}

var _ SaveService = (*SessionService)(nil)
