package service

import (
	"context"
	"errors"
	"fmt"

	"savings-core/internal/model"
	"savings-core/pkg/errno"

	"gorm.io/gorm"
)

var (
	ErrLogNotFound = errors.New("transaction log not found")
	// ErrStaleStatus 交易已处于同一或更靠后的状态，本次更新被忽略
	ErrStaleStatus = errors.New("transaction status is stale")
)

// TransactionRepository 交易日志 + 本地消息表
type TransactionRepository interface {
	// CreateWithOutbox 在同一个事务中写入交易日志和待发送消息
	CreateWithOutbox(ctx context.Context, log *model.TransactionLog, msg *model.OutboxMessage) error
	// UpdateStatus 根据回执更新状态，只允许前进
	// 交易不存在返回 ErrLogNotFound，状态不能前进返回 ErrStaleStatus
	UpdateStatus(ctx context.Context, manifestID, status, txHash string) error
	// ListBySession 按创建时间倒序
	ListBySession(ctx context.Context, sessionID string) ([]model.TransactionLog, error)

	// PendingOutbox 取一批待发送消息
	PendingOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error)
	// MarkSent 标记消息已投递
	MarkSent(ctx context.Context, id uint64) error
}

// GormTransactionRepository 基于 gorm 的实现
// 需要在 gorm.Config 中开启 TranslateError 才能识别唯一键冲突
type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) CreateWithOutbox(ctx context.Context, log *model.TransactionLog, msg *model.OutboxMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errno.ErrDuplicateSubmit
			}
			return fmt.Errorf("写入交易日志失败: %w", err)
		}
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("写入本地消息失败: %w", err)
		}
		return nil
	})
}

func (r *GormTransactionRepository) UpdateStatus(ctx context.Context, manifestID, status, txHash string) error {
	updates := map[string]interface{}{"status": status}
	if txHash != "" {
		updates["tx_hash"] = txHash
	}
	result := r.db.WithContext(ctx).
		Model(&model.TransactionLog{}).
		Where("manifest_id = ? AND status IN ?", manifestID, model.TxStatusesBefore(status)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// 没有更新: 区分交易不存在和状态已经更靠后
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionLog{}).
		Where("manifest_id = ?", manifestID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrLogNotFound, manifestID)
	}
	return fmt.Errorf("%w: %s -> %s", ErrStaleStatus, manifestID, status)
}

func (r *GormTransactionRepository) ListBySession(ctx context.Context, sessionID string) ([]model.TransactionLog, error) {
	var logs []model.TransactionLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *GormTransactionRepository) PendingOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	var messages []model.OutboxMessage
	err := r.db.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("id").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *GormTransactionRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.OutboxMessage{}).
		Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
