package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 交易日志状态
const (
	TxStatusPending   = "PENDING"   // 已生成交易，等待中继发送到 MQ
	TxStatusSubmitted = "SUBMITTED" // 广播方已发出
	TxStatusConfirmed = "CONFIRMED"
	TxStatusFailed    = "FAILED"
)

// 状态只能前进: PENDING -> SUBMITTED -> CONFIRMED/FAILED，PENDING 也可以直接到终态
// 终态不再变化，迟到或重投的回执不会让状态回退
var txStatusFrom = map[string][]string{
	TxStatusSubmitted: {TxStatusPending},
	TxStatusConfirmed: {TxStatusPending, TxStatusSubmitted},
	TxStatusFailed:    {TxStatusPending, TxStatusSubmitted},
}

// TxStatusesBefore 返回可以转换到 status 的状态
func TxStatusesBefore(status string) []string {
	return txStatusFrom[status]
}

// CanTransition 判断 from -> to 是否允许
func CanTransition(from, to string) bool {
	for _, s := range txStatusFrom[to] {
		if s == from {
			return true
		}
	}
	return false
}

// TransactionLog 储蓄交易日志
// ManifestID 是交易描述的 Blake3 指纹，防止同一笔交易重复提交
type TransactionLog struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ManifestID string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"manifest_id"`
	SessionID  string          `gorm:"type:varchar(64);not null;index" json:"session_id"`
	Account    string          `gorm:"type:varchar(42);not null;index" json:"account"`
	Version    string          `gorm:"type:varchar(8);not null" json:"version"`
	TxType     string          `gorm:"type:varchar(16);not null" json:"tx_type"` // DEPOSIT, WITHDRAW
	Contract   string          `gorm:"type:varchar(42);not null" json:"contract"`
	Function   string          `gorm:"type:varchar(64);not null" json:"function"`
	Args       string          `gorm:"type:text;not null" json:"args"` // JSON 数组
	Amount     decimal.Decimal `gorm:"type:decimal(78,18);not null" json:"amount"`
	Present    string          `gorm:"type:varchar(255);not null" json:"present"`
	Past       string          `gorm:"type:varchar(255);not null" json:"past"`
	TxHash     string          `gorm:"type:varchar(66)" json:"tx_hash,omitempty"`
	Status     string          `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (TransactionLog) TableName() string {
	return "transaction_logs"
}

// Description 根据状态返回现在时或过去时描述
func (l TransactionLog) Description() string {
	if l.Status == TxStatusConfirmed {
		return l.Past
	}
	return l.Present
}
