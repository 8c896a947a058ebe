package save

import (
	"fmt"
	"strings"
)

// Version 储蓄合约版本
type Version string

const (
	V1 Version = "v1"
	V2 Version = "v2"
)

// ParseVersion 空字符串返回 fallback
func ParseVersion(s string, fallback Version) (Version, error) {
	switch Version(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return fallback, nil
	case V1:
		return V1, nil
	case V2:
		return V2, nil
	default:
		return "", fmt.Errorf("unknown savings contract version %q", s)
	}
}

// Validator 纯函数: 同一个状态永远得到同样的结果
type Validator interface {
	Validate(s State) (bool, ReasonCode)
}

// ValidatorFor 返回对应版本的校验规则
func ValidatorFor(v Version) Validator {
	if v == V2 {
		return rules{checkAllowance: false}
	}
	return rules{checkAllowance: true}
}

// rules 两个版本只差在授权检查:
// v1 把未授权当作错误 (MUSDMustBeApproved)
// v2 由 NeedsUnlock 引导用户先 approve，不报错
type rules struct {
	checkAllowance bool
}

// Validate 按顺序检查，第一个失败的规则生效
func (r rules) Validate(s State) (bool, ReasonCode) {
	// 用户还没操作，不提示错误
	if !s.Touched || !s.Initialized {
		return false, ReasonNone
	}

	if s.Data == nil {
		return false, ReasonFetchingData
	}

	if s.Amount == nil || (s.TransactionType == Withdraw && s.AmountInCredits == nil) {
		return false, ReasonAmountMustBeSet
	}

	if s.Amount.Sign() <= 0 {
		return false, ReasonAmountMustBeGreaterThanZero
	}

	if s.TransactionType == Deposit {
		return r.validateDeposit(s)
	}
	return r.validateWithdraw(s)
}

func (r rules) validateDeposit(s State) (bool, ReasonCode) {
	token := s.Data.Token
	if token.Balance == nil {
		return false, ReasonFetchingData
	}
	if s.Amount.Cmp(*token.Balance) > 0 {
		return false, ReasonDepositAmountMustNotExceedTokenBalance
	}

	if r.checkAllowance {
		if token.Allowance == nil {
			return false, ReasonFetchingData
		}
		if token.Allowance.Cmp(*s.Amount) < 0 {
			return false, ReasonMUSDMustBeApproved
		}
	}
	return true, ReasonNone
}

func (r rules) validateWithdraw(s State) (bool, ReasonCode) {
	savings := s.Data.Savings
	if savings.CreditBalance == nil || savings.ExchangeRate == nil {
		return false, ReasonFetchingData
	}
	if s.AmountInCredits.Cmp(*savings.CreditBalance) > 0 {
		return false, ReasonWithdrawAmountMustNotExceedSavings
	}
	return true, ReasonNone
}
