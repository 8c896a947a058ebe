package model

import (
	"time"

	"gorm.io/gorm"
)

// 本地消息状态
const (
	OutboxPending = "PENDING"
	OutboxSent    = "SENT"
)

// OutboxMessage 本地消息表 (Transactional Outbox)
// 与 TransactionLog 在同一个数据库事务中写入，由 RelayService 搬运到 MQ
type OutboxMessage struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Topic     string         `gorm:"type:varchar(255);not null" json:"topic"`
	Key       string         `gorm:"type:varchar(255);not null;default:''" json:"key"`
	Payload   []byte         `gorm:"type:bytea;not null" json:"payload"`
	Status    string         `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}
