package save

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		version Version
		mutate  func(d *MarketData)
		actions []Action
		valid   bool
		reason  ReasonCode
	}{
		{
			name:    "未操作不报错",
			version: V1,
			valid:   false,
			reason:  ReasonNone,
		},
		{
			name:    "正常存入",
			version: V1,
			actions: []Action{SetAmount{FormValue: "10"}},
			valid:   true,
		},
		{
			name:    "金额为 0",
			version: V1,
			actions: []Action{SetAmount{FormValue: "0"}},
			reason:  ReasonAmountMustBeGreaterThanZero,
		},
		{
			name:    "存入超过余额",
			version: V1,
			actions: []Action{SetAmount{FormValue: "100.01"}},
			reason:  ReasonDepositAmountMustNotExceedTokenBalance,
		},
		{
			name:    "存入等于余额",
			version: V1,
			actions: []Action{SetAmount{FormValue: "100.0"}},
			valid:   true,
		},
		{
			name:    "v1 未授权",
			version: V1,
			mutate:  func(d *MarketData) { d.Token.Allowance = mustAmount("5") },
			actions: []Action{SetAmount{FormValue: "10"}},
			reason:  ReasonMUSDMustBeApproved,
		},
		{
			name:    "v2 未授权由 NeedsUnlock 处理",
			version: V2,
			mutate:  func(d *MarketData) { d.Token.Allowance = mustAmount("5") },
			actions: []Action{SetAmount{FormValue: "10"}},
			valid:   true,
		},
		{
			name:    "存入缺少余额数据",
			version: V1,
			mutate:  func(d *MarketData) { d.Token.Balance = nil },
			actions: []Action{SetAmount{FormValue: "10"}},
			reason:  ReasonFetchingData,
		},
		{
			name:    "正常取出",
			version: V1,
			actions: []Action{ToggleTransactionType{}, SetAmount{FormValue: "49"}},
			valid:   true,
		},
		{
			name:    "取出超过储蓄",
			version: V1,
			actions: []Action{ToggleTransactionType{}, SetAmount{FormValue: "50.5"}},
			reason:  ReasonWithdrawAmountMustNotExceedSavings,
		},
		{
			// 50 mUSD 换算成 credits 会多 1 wei，超过余额
			name:    "取出全部储蓄需要用 Max",
			version: V1,
			actions: []Action{ToggleTransactionType{}, SetAmount{FormValue: "50"}},
			reason:  ReasonWithdrawAmountMustNotExceedSavings,
		},
		{
			name:    "取出缺少汇率",
			version: V1,
			mutate:  func(d *MarketData) { d.Savings.ExchangeRate = nil },
			actions: []Action{ToggleTransactionType{}, SetAmount{FormValue: "1"}},
			reason:  ReasonAmountMustBeSet,
		},
		{
			name:    "取出缺少 credits",
			version: V1,
			mutate:  func(d *MarketData) { d.Savings.CreditBalance = nil },
			actions: []Action{ToggleTransactionType{}, SetAmount{FormValue: "1"}},
			reason:  ReasonFetchingData,
		},
		{
			name:    "无法解析",
			version: V2,
			actions: []Action{SetAmount{FormValue: "1.2.3"}},
			reason:  ReasonAmountMustBeSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := marketData(t)
			if tt.mutate != nil {
				tt.mutate(data)
			}
			m := NewMachine(tt.version)
			s := run(m, m.Initial(), append([]Action{ReceiveMarketData{Data: data}}, tt.actions...)...)

			assert.Equal(t, tt.valid, s.Valid)
			assert.Equal(t, tt.reason, s.Error)
		})
	}
}

func TestValidateUntouchedIgnoresMarketData(t *testing.T) {
	v := ValidatorFor(V1)

	s := InitialState()
	valid, reason := v.Validate(s)
	assert.False(t, valid)
	assert.Equal(t, ReasonNone, reason)

	s.Data = marketData(t)
	s.Initialized = true
	valid, reason = v.Validate(s)
	assert.False(t, valid)
	assert.Equal(t, ReasonNone, reason)
}

func TestValidateMissingMarketData(t *testing.T) {
	s := InitialState()
	s.Touched = true
	s.Initialized = true
	s.Amount = mustAmount("1")

	valid, reason := ValidatorFor(V1).Validate(s)
	assert.False(t, valid)
	assert.Equal(t, ReasonFetchingData, reason)
}

func TestValidateIsPure(t *testing.T) {
	m := NewMachine(V1)
	s := run(m, m.Initial(), ReceiveMarketData{Data: marketData(t)}, SetAmount{FormValue: "100.01"})

	v := ValidatorFor(V1)
	valid1, reason1 := v.Validate(s)
	valid2, reason2 := v.Validate(s)
	assert.Equal(t, valid1, valid2)
	assert.Equal(t, reason1, reason2)
}

func TestValidImpliesNoError(t *testing.T) {
	m := NewMachine(V1)
	s := run(m, m.Initial(), ReceiveMarketData{Data: marketData(t)}, SetMaxAmount{})
	assert.True(t, s.Valid)
	assert.Equal(t, ReasonNone, s.Error)
	assert.True(t, s.Touched && s.Initialized)
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("", V2)
	assert.NoError(t, err)
	assert.Equal(t, V2, v)

	v, err = ParseVersion(" V1 ", V2)
	assert.NoError(t, err)
	assert.Equal(t, V1, v)

	_, err = ParseVersion("v3", V1)
	assert.Error(t, err)
}
