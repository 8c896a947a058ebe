package marketdata

import (
	"context"
	"testing"
	"time"

	"savings-core/internal/save"
	"savings-core/pkg/amount"
	"savings-core/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() save.MarketData {
	balance := amount.MustParse("100", 18)
	rate := amount.MustParse("1", amount.RateDecimals)
	return save.MarketData{
		Token: save.TokenData{
			Address:   testToken,
			Symbol:    "mUSD",
			Decimals:  18,
			Balance:   &balance,
			Allowance: &balance,
		},
		Savings: save.SavingsData{
			Address:        testSavings,
			ExchangeRate:   &rate,
			CreditBalance:  &balance,
			CreditDecimals: 18,
			SavingsBalance: &balance,
		},
	}
}

func TestCachedProvider(t *testing.T) {
	ctx := context.Background()
	static := NewStaticProvider(sampleData())
	p := NewCachedProvider(static, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	q := Query{Account: testAccount, Token: testToken, Savings: testSavings}

	first, err := p.Fetch(ctx, q)
	require.NoError(t, err)
	second, err := p.Fetch(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, 1, static.Calls())
	assert.Equal(t, 0, first.Token.Balance.Cmp(*second.Token.Balance))
	assert.Equal(t, testAccount, second.Account)

	// 不同账户使用不同的 Key
	_, err = p.Fetch(ctx, Query{Account: "0x00000000000000000000000000000000000000bb", Token: testToken, Savings: testSavings})
	require.NoError(t, err)
	assert.Equal(t, 2, static.Calls())
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	static := NewStaticProvider(sampleData())
	static.Fail(assert.AnError)
	p := NewCachedProvider(static, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	q := Query{Account: testAccount, Token: testToken, Savings: testSavings}

	_, err := p.Fetch(ctx, q)
	assert.ErrorIs(t, err, assert.AnError)

	static.Fail(nil)
	_, err = p.Fetch(ctx, q)
	assert.NoError(t, err)
	assert.Equal(t, 2, static.Calls())
}
