package model

// AllModels 返回所有需要迁移的数据库模型对象
// 新增表时在这里添加，同时补充 migrations/ 下的 SQL
func AllModels() []interface{} {
	return []interface{}{
		&TransactionLog{},
		&OutboxMessage{},
	}
}
