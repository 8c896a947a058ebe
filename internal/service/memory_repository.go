package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"savings-core/internal/model"
	"savings-core/pkg/errno"
)

// MemoryTransactionRepository 内存版 TransactionRepository
// 用于测试和未配置数据库的本地调试，进程退出后数据丢失
type MemoryTransactionRepository struct {
	mu      sync.Mutex
	logs    map[string]*model.TransactionLog
	outbox  []model.OutboxMessage
	failErr error // 非空时写入失败
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{logs: make(map[string]*model.TransactionLog)}
}

func (r *MemoryTransactionRepository) CreateWithOutbox(ctx context.Context, log *model.TransactionLog, msg *model.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.logs[log.ManifestID]; ok {
		return errno.ErrDuplicateSubmit
	}
	log.ID = uint64(len(r.logs) + 1)
	log.CreatedAt = time.Now()
	cp := *log
	r.logs[log.ManifestID] = &cp

	msg.ID = uint64(len(r.outbox) + 1)
	r.outbox = append(r.outbox, *msg)
	return nil
}

func (r *MemoryTransactionRepository) UpdateStatus(ctx context.Context, manifestID, status, txHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[manifestID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLogNotFound, manifestID)
	}
	if !model.CanTransition(l.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrStaleStatus, manifestID, status)
	}
	l.Status = status
	if txHash != "" {
		l.TxHash = txHash
	}
	return nil
}

func (r *MemoryTransactionRepository) ListBySession(ctx context.Context, sessionID string) ([]model.TransactionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TransactionLog
	for _, l := range r.logs {
		if l.SessionID == sessionID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryTransactionRepository) PendingOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.OutboxMessage
	for _, m := range r.outbox {
		if m.Status == model.OutboxPending && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemoryTransactionRepository) MarkSent(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.outbox {
		if r.outbox[i].ID == id {
			r.outbox[i].Status = model.OutboxSent
		}
	}
	return nil
}

// Log 按 manifest_id 查找
func (r *MemoryTransactionRepository) Log(manifestID string) (model.TransactionLog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[manifestID]
	if !ok {
		return model.TransactionLog{}, false
	}
	return *l, true
}

// FailWith 之后的写入都返回 err，传 nil 恢复
func (r *MemoryTransactionRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

var _ TransactionRepository = (*MemoryTransactionRepository)(nil)
