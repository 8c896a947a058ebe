package save

import (
	"savings-core/pkg/amount"
)

// Reduce 纯函数状态转换: 没有副作用，不做 I/O
// 金额/校验相关字段由 Pipeline 重新计算
// 未知 Action 直接 panic (fail-fast)
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case ReceiveMarketData:
		s.Data = act.Data
		return s

	case SetAmount:
		return setAmount(s, act.FormValue)

	case SetMaxAmount:
		return setMaxAmount(s)

	case ToggleTransactionType:
		s.TransactionType = s.TransactionType.Flip()
		s.Amount = nil
		s.AmountInCredits = nil
		s.FormValue = ""
		s.Touched = false
		return s

	default:
		panic(unknownAction(a))
	}
}

func setAmount(s State, formValue string) State {
	s.FormValue = formValue
	s.Touched = formValue != ""
	s.Amount = nil
	s.AmountInCredits = nil

	// 解析失败不是错误，只是 "没有金额"，由 Validate 报 AmountMustBeSet
	parsed, ok := amount.Parse(formValue, s.tokenDecimals())
	if !ok {
		return s
	}
	s.Amount = &parsed

	if s.TransactionType == Withdraw {
		s.AmountInCredits = creditsFor(s, parsed)
	}
	return s
}

func setMaxAmount(s State) State {
	if s.Data == nil {
		return s
	}

	switch s.TransactionType {
	case Deposit:
		balance := s.Data.Token.Balance
		if balance == nil {
			return s
		}
		s.Amount = balance
		s.AmountInCredits = nil

	case Withdraw:
		savings := s.Data.Savings
		if savings.SavingsBalance == nil || savings.CreditBalance == nil {
			return s
		}
		// 直接用全部 credits，保证全部赎回不会留下尾数
		s.Amount = savings.SavingsBalance
		s.AmountInCredits = savings.CreditBalance
	}

	s.FormValue = s.Amount.String()
	s.Touched = true
	return s
}

// creditsFor 没有汇率时返回 nil
func creditsFor(s State, a amount.Amount) *amount.Amount {
	if s.Data == nil || s.Data.Savings.ExchangeRate == nil {
		return nil
	}
	credits, err := amount.ConvertToCredits(a, *s.Data.Savings.ExchangeRate, s.creditDecimals())
	if err != nil {
		return nil
	}
	return &credits
}
