package save

import (
	"time"

	"savings-core/pkg/amount"
)

// TransactionType 存取方向
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
)

// Flip 返回相反方向
func (t TransactionType) Flip() TransactionType {
	if t == Deposit {
		return Withdraw
	}
	return Deposit
}

// ReasonCode 校验失败原因 (空字符串表示没有错误)
// 这些不是 Go error，只用于提示用户并禁用提交按钮
type ReasonCode string

const (
	ReasonNone                                   ReasonCode = ""
	ReasonAmountMustBeSet                        ReasonCode = "AmountMustBeSet"
	ReasonAmountMustBeGreaterThanZero            ReasonCode = "AmountMustBeGreaterThanZero"
	ReasonDepositAmountMustNotExceedTokenBalance ReasonCode = "DepositAmountMustNotExceedTokenBalance"
	ReasonMUSDMustBeApproved                     ReasonCode = "MUSDMustBeApproved"
	ReasonWithdrawAmountMustNotExceedSavings     ReasonCode = "WithdrawAmountMustNotExceedSavingsBalance"
	ReasonFetchingData                           ReasonCode = "FetchingData"
)

// TokenData 代币快照 (mAsset)
type TokenData struct {
	Address   string         `json:"address"`
	Symbol    string         `json:"symbol"`
	Decimals  int            `json:"decimals"`
	Balance   *amount.Amount `json:"balance,omitempty"`
	Allowance *amount.Amount `json:"allowance,omitempty"` // 授权给储蓄合约的额度
}

// SavingsData 储蓄合约快照
type SavingsData struct {
	Address        string         `json:"address"`
	ExchangeRate   *amount.Amount `json:"exchange_rate,omitempty"` // 1e18 精度
	CreditBalance  *amount.Amount `json:"credit_balance,omitempty"`
	CreditDecimals int            `json:"credit_decimals"`
	SavingsBalance *amount.Amount `json:"savings_balance,omitempty"` // credits 折算的底层资产
}

// MarketData 外部数据提供方给出的只读快照
type MarketData struct {
	Account     string      `json:"account"`
	Token       TokenData   `json:"token"`
	Savings     SavingsData `json:"savings"`
	BlockNumber uint64      `json:"block_number,omitempty"` // 快照所在区块，0 表示未知
	FetchedAt   time.Time   `json:"fetched_at"`
}

// Simulation 交易效果预测，目前只是原样带到下一个状态
type Simulation struct {
	TokenBalance   *amount.Amount `json:"token_balance,omitempty"`
	SavingsBalance *amount.Amount `json:"savings_balance,omitempty"`
}

// State 表单状态
// 每次状态转换都会产生一个新值，不会原地修改
type State struct {
	FormValue       string          `json:"form_value"`
	Amount          *amount.Amount  `json:"amount,omitempty"`
	AmountInCredits *amount.Amount  `json:"amount_in_credits,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	Touched         bool            `json:"touched"`
	Initialized     bool            `json:"initialized"`
	NeedsUnlock     bool            `json:"needs_unlock"`
	Valid           bool            `json:"valid"`
	Error           ReasonCode      `json:"error,omitempty"`
	Simulated       *Simulation     `json:"simulated,omitempty"`
	Data            *MarketData     `json:"data,omitempty"`
}

// InitialState 功能挂载时的空状态
func InitialState() State {
	return State{TransactionType: Deposit}
}

// tokenDecimals 未收到行情前默认按 18 位精度解析
func (s State) tokenDecimals() int {
	if s.Data == nil {
		return 18
	}
	return s.Data.Token.Decimals
}

func (s State) creditDecimals() int {
	if s.Data == nil || s.Data.Savings.CreditDecimals == 0 {
		return 18
	}
	return s.Data.Savings.CreditDecimals
}
