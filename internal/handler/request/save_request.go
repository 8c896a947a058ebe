package request

// CreateSessionRequest 打开一个存取表单
type CreateSessionRequest struct {
	Account string `json:"account" binding:"required,eth_account" example:"0x9858EfFD232B4033E47d90003D41EC34EcaEda94"`
	Version string `json:"version" binding:"omitempty,oneof=v1 v2 V1 V2" example:"v1"`
}

// SetAmountRequest 表单输入框的原始文本，允许为空字符串 (清空输入)
type SetAmountRequest struct {
	Value *string `json:"value" binding:"required,max=80" example:"12.5"`
}
