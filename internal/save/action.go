package save

import (
	"errors"
	"fmt"
)

// ErrUnknownAction Reduce 收到未知 Action 时 panic 的原因，属于编程错误
var ErrUnknownAction = errors.New("save: unknown action")

// Action 是封闭的 Action 集合，只有本包内的类型可以实现
type Action interface {
	Name() string
	action()
}

// ReceiveMarketData 替换行情快照
type ReceiveMarketData struct {
	Data *MarketData
}

// SetAmount 用户输入金额
type SetAmount struct {
	FormValue string
}

// SetMaxAmount 最大金额 (存入: 全部余额; 取出: 全部储蓄)
type SetMaxAmount struct{}

// ToggleTransactionType 切换存入/取出
type ToggleTransactionType struct{}

func (ReceiveMarketData) Name() string     { return "RECEIVE_MARKET_DATA" }
func (SetAmount) Name() string             { return "SET_AMOUNT" }
func (SetMaxAmount) Name() string          { return "SET_MAX_AMOUNT" }
func (ToggleTransactionType) Name() string { return "TOGGLE_TRANSACTION_TYPE" }

func (ReceiveMarketData) action()     {}
func (SetAmount) action()             {}
func (SetMaxAmount) action()          {}
func (ToggleTransactionType) action() {}

func unknownAction(a Action) error {
	return fmt.Errorf("%w: %T", ErrUnknownAction, a)
}
