package save

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState    = errors.New("save: state is not valid for submission")
	ErrUnlockNotNeeded = errors.New("save: allowance already covers the amount")
)

// Purpose 交易日志中展示的描述
type Purpose struct {
	Present string `json:"present"`
	Past    string `json:"past"`
}

// Manifest 交给外部提交方的交易描述，本包不做任何网络 I/O
type Manifest struct {
	Version         Version         `json:"version"`
	TransactionType TransactionType `json:"transaction_type"`
	Contract        string          `json:"contract"`
	Function        string          `json:"function"`
	Args            []string        `json:"args"` // 十进制 exact 整数 / 地址
	Purpose         Purpose         `json:"purpose"`
}

// 合约方法名
const (
	FnApprove        = "approve"
	FnDepositSavings = "depositSavings"
	FnRedeem         = "redeem"
	FnRedeemCredits  = "redeemCredits"
)

// BuildManifest 只有 Valid 的状态才能生成交易
// v2 存入且额度不足时先生成 approve 交易
func BuildManifest(v Version, s State) (*Manifest, error) {
	if !s.Valid || s.Data == nil || s.Amount == nil {
		return nil, ErrInvalidState
	}

	symbol := tokenSymbol(s)
	display := s.Amount.Format(2)

	m := &Manifest{Version: v, TransactionType: s.TransactionType}

	switch s.TransactionType {
	case Deposit:
		if s.NeedsUnlock {
			return approveManifest(v, s), nil
		}
		m.Contract = s.Data.Savings.Address
		m.Function = FnDepositSavings
		m.Args = []string{s.Amount.Exact().String()}
		m.Purpose = Purpose{
			Present: fmt.Sprintf("Depositing %s %s", display, symbol),
			Past:    fmt.Sprintf("Deposited %s %s", display, symbol),
		}

	case Withdraw:
		if s.AmountInCredits == nil {
			return nil, ErrInvalidState
		}
		m.Contract = s.Data.Savings.Address
		m.Function = FnRedeem
		if v == V2 {
			m.Function = FnRedeemCredits
		}
		m.Args = []string{s.AmountInCredits.Exact().String()}
		m.Purpose = Purpose{
			Present: fmt.Sprintf("Withdrawing %s %s", display, symbol),
			Past:    fmt.Sprintf("Withdrew %s %s", display, symbol),
		}

	default:
		return nil, ErrInvalidState
	}
	return m, nil
}

// BuildApproveManifest 生成授权交易，v1 和 v2 都可用
// v1 的校验在额度不足时报 MUSDMustBeApproved，状态不会 Valid，只能走这里先 approve
func BuildApproveManifest(v Version, s State) (*Manifest, error) {
	if !s.Initialized || s.Data == nil || s.Amount == nil || s.TransactionType != Deposit {
		return nil, ErrInvalidState
	}
	if s.Amount.Sign() <= 0 {
		return nil, ErrInvalidState
	}
	if !s.NeedsUnlock {
		return nil, ErrUnlockNotNeeded
	}
	return approveManifest(v, s), nil
}

// approveManifest 授权储蓄合约使用 Amount 数量的代币
func approveManifest(v Version, s State) *Manifest {
	symbol := tokenSymbol(s)
	return &Manifest{
		Version:         v,
		TransactionType: Deposit,
		Contract:        s.Data.Token.Address,
		Function:        FnApprove,
		Args:            []string{s.Data.Savings.Address, s.Amount.Exact().String()},
		Purpose: Purpose{
			Present: fmt.Sprintf("Approving %s", symbol),
			Past:    fmt.Sprintf("Approved %s", symbol),
		},
	}
}

func tokenSymbol(s State) string {
	if s.Data.Token.Symbol == "" {
		return "mUSD"
	}
	return s.Data.Token.Symbol
}
