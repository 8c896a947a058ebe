package service

import (
	"time"

	"savings-core/internal/marketdata"
	"savings-core/internal/save"
	"savings-core/pkg/amount"
)

const (
	testAccount = "0x9858effd232b4033e47d90003d41ec34ecaeda94"
	testToken   = "0xe2f2a5C287993345a840Db3B0845fbC70f5935a5"
	testSavings = "0xcf3F73290803Fc04425BEE135a4Caeb2BaB2C2A1"
)

func ptr(a amount.Amount) *amount.Amount {
	return &a
}

// sampleData 余额 100 mUSD，授权 allowance，储蓄 100 mUSD，汇率 1
func sampleData(allowance string) save.MarketData {
	return save.MarketData{
		Token: save.TokenData{
			Address:   testToken,
			Symbol:    "mUSD",
			Decimals:  18,
			Balance:   ptr(amount.MustParse("100", 18)),
			Allowance: ptr(amount.MustParse(allowance, 18)),
		},
		Savings: save.SavingsData{
			Address:        testSavings,
			ExchangeRate:   ptr(amount.MustParse("1", amount.RateDecimals)),
			CreditBalance:  ptr(amount.MustParse("100", 18)),
			CreditDecimals: 18,
			SavingsBalance: ptr(amount.MustParse("100", 18)),
		},
	}
}

func newTestService(provider marketdata.Provider, repo TransactionRepository) *SessionService {
	return NewSessionService(SessionConfig{
		Token:          testToken,
		Savings:        testSavings,
		PollInterval:   time.Hour,
		DefaultVersion: save.V1,
		TxTopic:        "savings_transactions",
	}, provider, repo)
}
