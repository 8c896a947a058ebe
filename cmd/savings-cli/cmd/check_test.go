package cmd

import (
	"testing"

	"savings-core/internal/save"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseCheck() checkOptions {
	return checkOptions{
		version:        "v1",
		txType:         "deposit",
		balance:        "100",
		allowance:      "1000",
		rate:           "1",
		credits:        "50",
		decimals:       18,
		creditDecimals: 18,
	}
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(o *checkOptions)
		valid    bool
		reason   save.ReasonCode
		function string
	}{
		{"存入", func(o *checkOptions) { o.amount = "10" }, true, save.ReasonNone, save.FnDepositSavings},
		{"存入超过余额", func(o *checkOptions) { o.amount = "101" }, false, save.ReasonDepositAmountMustNotExceedTokenBalance, ""},
		{"v1 未授权", func(o *checkOptions) { o.amount = "10"; o.allowance = "1" }, false, save.ReasonMUSDMustBeApproved, ""},
		{"v2 先授权", func(o *checkOptions) { o.amount = "10"; o.allowance = "1"; o.version = "v2" }, true, save.ReasonNone, save.FnApprove},
		{"金额为 0", func(o *checkOptions) { o.amount = "0" }, false, save.ReasonAmountMustBeGreaterThanZero, ""},
		{"无法解析", func(o *checkOptions) { o.amount = "1..2" }, false, save.ReasonAmountMustBeSet, ""},
		{"取出最大值", func(o *checkOptions) { o.txType = "withdraw"; o.max = true }, true, save.ReasonNone, save.FnRedeem},
		{"取出超过储蓄", func(o *checkOptions) { o.txType = "withdraw"; o.amount = "50" }, false, save.ReasonWithdrawAmountMustNotExceedSavings, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseCheck()
			tt.modify(&opts)

			res, err := runCheck(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.reason, res.Reason)
			if tt.function == "" {
				assert.Nil(t, res.Manifest)
				return
			}
			require.NotNil(t, res.Manifest)
			assert.Equal(t, tt.function, res.Manifest.Function)
		})
	}
}

func TestRunCheckBadInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *checkOptions)
	}{
		{"版本", func(o *checkOptions) { o.version = "v7" }},
		{"方向", func(o *checkOptions) { o.txType = "borrow" }},
		{"余额", func(o *checkOptions) { o.balance = "lots" }},
		{"汇率为 0", func(o *checkOptions) { o.rate = "0" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseCheck()
			tt.modify(&opts)
			_, err := runCheck(opts)
			assert.Error(t, err)
		})
	}
}
