package save

import (
	"savings-core/pkg/amount"
)

// Pass 是 Pipeline 中的一个纯函数步骤
type Pass func(State) State

// Pipeline 每次 Reduce 之后按固定顺序执行
// Initialize -> UpdateNeedsUnlock -> Simulate -> Validate
type Pipeline []Pass

// NewPipeline 构造标准 Pipeline，最后一步使用指定版本的校验规则
func NewPipeline(v Validator) Pipeline {
	return Pipeline{
		Initialize,
		UpdateNeedsUnlock,
		Simulate,
		ValidatePass(v),
	}
}

func (p Pipeline) Apply(s State) State {
	for _, pass := range p {
		s = pass(s)
	}
	return s
}

// Initialize 第一次收到行情时标记 initialized 并写入 0 值
func Initialize(s State) State {
	if s.Initialized || s.Data == nil {
		return s
	}
	s.Initialized = true

	// 行情到达前输入的金额按默认精度解析，这里用代币真实精度重新解析
	if s.FormValue != "" {
		return setAmount(s, s.FormValue)
	}

	if s.Amount == nil {
		zero := amount.Zero(s.tokenDecimals())
		s.Amount = &zero
	}
	if s.TransactionType == Withdraw && s.AmountInCredits == nil {
		zero := amount.Zero(s.creditDecimals())
		s.AmountInCredits = &zero
	}
	return s
}

// UpdateNeedsUnlock 存入金额超过授权额度时需要先 approve
func UpdateNeedsUnlock(s State) State {
	s.NeedsUnlock = false
	if !s.Initialized || s.Data == nil {
		return s
	}
	if s.TransactionType != Deposit || s.Amount == nil {
		return s
	}
	allowance := s.Data.Token.Allowance
	s.NeedsUnlock = allowance != nil && allowance.Cmp(*s.Amount) < 0
	return s
}

// Simulate 预留的交易效果预测步骤
// TODO: 接入余额预测后在这里计算 Simulated，目前存取两个方向都沿用上一次的值
func Simulate(s State) State {
	switch s.TransactionType {
	case Deposit:
		return simulateDeposit(s)
	case Withdraw:
		return simulateWithdraw(s)
	}
	return s
}

func simulateDeposit(s State) State  { return s }
func simulateWithdraw(s State) State { return s }

// ValidatePass 把 Validator 包装成 Pipeline 的最后一步
func ValidatePass(v Validator) Pass {
	return func(s State) State {
		s.Valid, s.Error = v.Validate(s)
		return s
	}
}
