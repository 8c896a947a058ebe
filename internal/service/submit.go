package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"savings-core/internal/model"
	"savings-core/internal/save"
	"savings-core/pkg/crypto_util"
	"savings-core/pkg/errno"
	"savings-core/pkg/logger"
	"savings-core/pkg/monitor"

	"go.uber.org/zap"
)

// SubmissionMessage 发送到交易主题的消息体，由外部广播方签名并上链
type SubmissionMessage struct {
	ManifestID string         `json:"manifest_id"`
	SessionID  string         `json:"session_id"`
	Account    string         `json:"account"`
	Manifest   *save.Manifest `json:"manifest"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TransactionView 对外展示的交易日志
type TransactionView struct {
	ManifestID  string    `json:"manifest_id"`
	Type        string    `json:"type"`
	Function    string    `json:"function"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	TxHash      string    `json:"tx_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTransactionView(l model.TransactionLog) TransactionView {
	return TransactionView{
		ManifestID:  l.ManifestID,
		Type:        l.TxType,
		Function:    l.Function,
		Amount:      l.Amount.String(),
		Status:      l.Status,
		Description: l.Description(),
		TxHash:      l.TxHash,
		CreatedAt:   l.CreatedAt,
	}
}

// SubmitResult Submit 的返回
type SubmitResult struct {
	Manifest    *save.Manifest  `json:"manifest"`
	Transaction TransactionView `json:"transaction"`
}

// manifestID 交易指纹: 同一个会话、同一份行情快照下的同一笔交易只能提交一次
func manifestID(sessionID string, fetchedAt time.Time, raw []byte) string {
	seed := make([]byte, 0, len(sessionID)+len(raw)+32)
	seed = append(seed, sessionID...)
	seed = append(seed, '|')
	seed = append(seed, fetchedAt.UTC().Format(time.RFC3339Nano)...)
	seed = append(seed, '|')
	seed = append(seed, raw...)
	return crypto_util.CalculateBlake3(seed)
}

// Submit 把当前状态转换为交易描述，交易日志和本地消息在同一个事务中落库
// 实际发送由 RelayService 完成
func (s *SessionService) Submit(ctx context.Context, id string) (*SubmitResult, error) {
	return s.submitWith(ctx, id, save.BuildManifest)
}

// Approve 额度不足时生成 approve 交易，v1 的存入必须先走这一步
func (s *SessionService) Approve(ctx context.Context, id string) (*SubmitResult, error) {
	return s.submitWith(ctx, id, save.BuildApproveManifest)
}

type manifestBuilder func(save.Version, save.State) (*save.Manifest, error)

func (s *SessionService) submitWith(ctx context.Context, id string, build manifestBuilder) (*SubmitResult, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	st := sess.State()
	manifest, err := build(sess.Version, st)
	if err != nil {
		switch {
		case errors.Is(err, save.ErrInvalidState):
			return nil, errno.ErrTransactionInvalid
		case errors.Is(err, save.ErrUnlockNotNeeded):
			return nil, errno.ErrUnlockNotNeeded
		}
		return nil, err
	}

	raw, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("序列化交易失败: %w", err)
	}
	args, err := json.Marshal(manifest.Args)
	if err != nil {
		return nil, fmt.Errorf("序列化参数失败: %w", err)
	}

	mid := manifestID(sess.ID, st.Data.FetchedAt, raw)
	payload, err := json.Marshal(SubmissionMessage{
		ManifestID: mid,
		SessionID:  sess.ID,
		Account:    sess.Account,
		Manifest:   manifest,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("序列化消息失败: %w", err)
	}

	log := &model.TransactionLog{
		ManifestID: mid,
		SessionID:  sess.ID,
		Account:    sess.Account,
		Version:    string(sess.Version),
		TxType:     string(manifest.TransactionType),
		Contract:   manifest.Contract,
		Function:   manifest.Function,
		Args:       string(args),
		Amount:     st.Amount.Decimal(),
		Present:    manifest.Purpose.Present,
		Past:       manifest.Purpose.Past,
		Status:     model.TxStatusPending,
	}
	msg := &model.OutboxMessage{
		Topic:   s.cfg.TxTopic,
		Key:     sess.Account,
		Payload: payload,
		Status:  model.OutboxPending,
	}

	if err := s.txs.CreateWithOutbox(ctx, log, msg); err != nil {
		if errors.Is(err, errno.ErrDuplicateSubmit) {
			return nil, errno.ErrDuplicateSubmit
		}
		logger.Error("保存交易失败", zap.String("session", sess.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errno.ErrDatabase, err)
	}

	if m := monitor.Business; m != nil {
		m.ManifestsTotal.WithLabelValues(string(manifest.TransactionType), manifest.Function).Inc()
	}
	logger.Info("交易已生成",
		zap.String("session", sess.ID),
		zap.String("manifest_id", mid),
		zap.String("function", manifest.Function),
		zap.Strings("args", manifest.Args))

	return &SubmitResult{Manifest: manifest, Transaction: newTransactionView(*log)}, nil
}
