package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"savings-core/internal/model"
	"savings-core/internal/service/mq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenRepo struct {
	*MemoryTransactionRepository
}

func (brokenRepo) UpdateStatus(ctx context.Context, manifestID, status, txHash string) error {
	return errors.New("db down")
}

func TestReceiptHandle(t *testing.T) {
	repo := NewMemoryTransactionRepository()
	seedOutbox(t, repo, 1) // manifest_id "a"
	svc := NewReceiptService(repo, mq.NewMemoryQueue(), "savings_receipts")
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
		status  string
		txHash  string
	}{
		{"格式错误", `{`, model.TxStatusPending, ""},
		{"未知状态", `{"manifest_id":"a","status":"MINED"}`, model.TxStatusPending, ""},
		{"未知交易", `{"manifest_id":"zz","status":"CONFIRMED"}`, model.TxStatusPending, ""},
		{"已广播", `{"manifest_id":"a","status":"SUBMITTED","tx_hash":"0xabc"}`, model.TxStatusSubmitted, "0xabc"},
		{"已确认", `{"manifest_id":"a","status":"CONFIRMED"}`, model.TxStatusConfirmed, "0xabc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Handle(ctx, &mq.Message{ID: "1", Payload: []byte(tt.payload)})
			require.NoError(t, err)
			l, ok := repo.Log("a")
			require.True(t, ok)
			assert.Equal(t, tt.status, l.Status)
			assert.Equal(t, tt.txHash, l.TxHash)
		})
	}
}

func TestReceiptHandleDatabaseError(t *testing.T) {
	svc := NewReceiptService(brokenRepo{NewMemoryTransactionRepository()}, mq.NewMemoryQueue(), "savings_receipts")
	err := svc.Handle(context.Background(), &mq.Message{Payload: []byte(`{"manifest_id":"a","status":"FAILED"}`)})
	assert.Error(t, err)
}

func TestReceiptStart(t *testing.T) {
	repo := NewMemoryTransactionRepository()
	seedOutbox(t, repo, 1)
	queue := mq.NewMemoryQueue()
	svc := NewReceiptService(repo, queue, "savings_receipts")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	require.NoError(t, queue.Publish(ctx, "savings_receipts", "", []byte(`{"manifest_id":"a","status":"FAILED"}`)))
	assert.Eventually(t, func() bool {
		l, _ := repo.Log("a")
		return l.Status == model.TxStatusFailed
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestReceiptHandleIgnoresStaleStatus(t *testing.T) {
	tests := []struct {
		name     string
		receipts []string
		status   string
		txHash   string
	}{
		{
			"确认后迟到的已广播",
			[]string{
				`{"manifest_id":"a","status":"CONFIRMED","tx_hash":"0xabc"}`,
				`{"manifest_id":"a","status":"SUBMITTED","tx_hash":"0xdef"}`,
			},
			model.TxStatusConfirmed, "0xabc",
		},
		{
			"失败后的确认",
			[]string{
				`{"manifest_id":"a","status":"FAILED"}`,
				`{"manifest_id":"a","status":"CONFIRMED"}`,
			},
			model.TxStatusFailed, "",
		},
		{
			"重复投递",
			[]string{
				`{"manifest_id":"a","status":"SUBMITTED","tx_hash":"0xabc"}`,
				`{"manifest_id":"a","status":"SUBMITTED","tx_hash":"0xabc"}`,
			},
			model.TxStatusSubmitted, "0xabc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMemoryTransactionRepository()
			seedOutbox(t, repo, 1)
			svc := NewReceiptService(repo, mq.NewMemoryQueue(), "savings_receipts")

			for _, payload := range tt.receipts {
				require.NoError(t, svc.Handle(context.Background(), &mq.Message{ID: "1", Payload: []byte(payload)}))
			}

			l, ok := repo.Log("a")
			require.True(t, ok)
			assert.Equal(t, tt.status, l.Status)
			assert.Equal(t, tt.txHash, l.TxHash)
		})
	}
}

func TestMemoryRepositoryStaleStatus(t *testing.T) {
	repo := NewMemoryTransactionRepository()
	seedOutbox(t, repo, 1)
	ctx := context.Background()

	require.NoError(t, repo.UpdateStatus(ctx, "a", model.TxStatusConfirmed, ""))
	err := repo.UpdateStatus(ctx, "a", model.TxStatusSubmitted, "")
	assert.ErrorIs(t, err, ErrStaleStatus)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "zz", model.TxStatusSubmitted, ""), ErrLogNotFound)
}
