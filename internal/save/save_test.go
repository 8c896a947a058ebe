package save

import (
	"testing"

	"savings-core/pkg/amount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(t *testing.T, text string) *amount.Amount {
	t.Helper()
	a, ok := amount.Parse(text, 18)
	require.True(t, ok, "parse %q", text)
	return &a
}

func mustAmount(text string) *amount.Amount {
	a := amount.MustParse(text, 18)
	return &a
}

// marketData 余额 100 mUSD，授权 1000，汇率 0.1，credits 500 (= 50 mUSD)
func marketData(t *testing.T) *MarketData {
	t.Helper()
	rate := amt(t, "0.1")
	credits := amt(t, "500")
	savingsBalance := amount.ConvertFromCredits(*credits, *rate, 18)
	return &MarketData{
		Account: "0x00000000000000000000000000000000000000aa",
		Token: TokenData{
			Address:   "0x00000000000000000000000000000000000000bb",
			Symbol:    "mUSD",
			Decimals:  18,
			Balance:   amt(t, "100"),
			Allowance: amt(t, "1000"),
		},
		Savings: SavingsData{
			Address:        "0x00000000000000000000000000000000000000cc",
			ExchangeRate:   rate,
			CreditBalance:  credits,
			CreditDecimals: 18,
			SavingsBalance: &savingsBalance,
		},
	}
}

// run 依次执行 Action
func run(m Machine, s State, actions ...Action) State {
	for _, a := range actions {
		s = m.Transition(s, a)
	}
	return s
}

type bogusAction struct{}

func (bogusAction) Name() string { return "BOGUS" }
func (bogusAction) action()      {}

func TestInitialState(t *testing.T) {
	s := NewMachine(V1).Initial()
	assert.Equal(t, Deposit, s.TransactionType)
	assert.False(t, s.Initialized)
	assert.False(t, s.Touched)
	assert.False(t, s.Valid)
	assert.Equal(t, ReasonNone, s.Error)
}

func TestReceiveMarketDataInitializes(t *testing.T) {
	m := NewMachine(V1)
	s := run(m, m.Initial(), ReceiveMarketData{Data: marketData(t)})

	assert.True(t, s.Initialized)
	require.NotNil(t, s.Amount)
	assert.True(t, s.Amount.IsZero())
	assert.Equal(t, 18, s.Amount.Decimals())
	assert.Nil(t, s.AmountInCredits, "存入方向不应该有 credits")
	assert.False(t, s.Valid)
	assert.Equal(t, ReasonNone, s.Error)
}

func TestAmountTypedBeforeDataIsReparsed(t *testing.T) {
	m := NewMachine(V1)
	data := marketData(t)
	data.Token.Decimals = 6
	balance := amount.MustParse("100", 6)
	data.Token.Balance = &balance
	data.Token.Allowance = &balance

	s := run(m, m.Initial(), SetAmount{FormValue: "1.5"}, ReceiveMarketData{Data: data})

	require.NotNil(t, s.Amount)
	assert.Equal(t, 6, s.Amount.Decimals())
	assert.Equal(t, "1500000", s.Amount.Exact().String())
	assert.True(t, s.Valid)
}

func TestSetAmountWithdrawComputesCredits(t *testing.T) {
	m := NewMachine(V1)
	s := run(m, m.Initial(),
		ReceiveMarketData{Data: marketData(t)},
		ToggleTransactionType{},
		SetAmount{FormValue: "10"},
	)

	require.NotNil(t, s.AmountInCredits)
	// 10 / 0.1 = 100 credits，再加 1 wei
	want := amt(t, "100").Add(amount.Unit(18))
	assert.Equal(t, want.Exact().String(), s.AmountInCredits.Exact().String())
	assert.True(t, s.Valid)
}

func TestSetAmountUnparsableIsAbsent(t *testing.T) {
	m := NewMachine(V1)
	s := run(m, m.Initial(), ReceiveMarketData{Data: marketData(t)}, SetAmount{FormValue: "abc"})

	assert.Nil(t, s.Amount)
	assert.True(t, s.Touched)
	assert.False(t, s.Valid)
	assert.Equal(t, ReasonAmountMustBeSet, s.Error)
}

func TestSetAmountEmptyUntouches(t *testing.T) {
	m := NewMachine(V1)
	s := run(m, m.Initial(),
		ReceiveMarketData{Data: marketData(t)},
		SetAmount{FormValue: "1"},
		SetAmount{FormValue: ""},
	)
	assert.False(t, s.Touched)
	assert.Equal(t, ReasonNone, s.Error)
}

func TestToggleResetsState(t *testing.T) {
	m := NewMachine(V1)
	for _, start := range []TransactionType{Deposit, Withdraw} {
		s := run(m, m.Initial(), ReceiveMarketData{Data: marketData(t)})
		if start == Withdraw {
			s = m.Transition(s, ToggleTransactionType{})
		}
		s = m.Transition(s, SetAmount{FormValue: "5"})
		require.NotNil(t, s.Amount)

		toggled := Reduce(s, ToggleTransactionType{})
		assert.Nil(t, toggled.Amount)
		assert.Nil(t, toggled.AmountInCredits)
		assert.Empty(t, toggled.FormValue)
		assert.False(t, toggled.Touched)
		assert.Equal(t, start.Flip(), toggled.TransactionType)
	}
}

func TestSetMaxAmountDeposit(t *testing.T) {
	m := NewMachine(V1)
	s := run(m, m.Initial(), ReceiveMarketData{Data: marketData(t)}, SetMaxAmount{})

	require.NotNil(t, s.Amount)
	assert.Equal(t, 0, s.Amount.Cmp(*amt(t, "100")))
	assert.Nil(t, s.AmountInCredits)
	assert.Equal(t, "100", s.FormValue)
	assert.True(t, s.Touched)
	assert.True(t, s.Valid)
}

func TestSetMaxAmountWithdrawBurnsAllCredits(t *testing.T) {
	m := NewMachine(V1)
	data := marketData(t)
	s := run(m, m.Initial(), ReceiveMarketData{Data: data}, ToggleTransactionType{}, SetMaxAmount{})

	require.NotNil(t, s.AmountInCredits)
	assert.Equal(t, data.Savings.CreditBalance.Exact().String(), s.AmountInCredits.Exact().String())
	assert.Equal(t, 0, s.Amount.Cmp(*amt(t, "50")))
	assert.True(t, s.Valid)
}

func TestSetMaxAmountWithoutDataIsNoop(t *testing.T) {
	s := InitialState()
	assert.Equal(t, s, Reduce(s, SetMaxAmount{}))

	data := marketData(t)
	data.Token.Balance = nil
	s.Data = data
	assert.Equal(t, s, Reduce(s, SetMaxAmount{}))
}

func TestUnknownActionPanics(t *testing.T) {
	assert.PanicsWithError(t, "save: unknown action: save.bogusAction", func() {
		Reduce(InitialState(), bogusAction{})
	})
	assert.Panics(t, func() {
		Reduce(InitialState(), nil)
	})
}

func TestNeedsUnlock(t *testing.T) {
	m := NewMachine(V2)
	data := marketData(t)
	data.Token.Allowance = amt(t, "5")

	s := run(m, m.Initial(), ReceiveMarketData{Data: data}, SetAmount{FormValue: "10"})
	assert.True(t, s.NeedsUnlock)

	s = m.Transition(s, SetAmount{FormValue: "5"})
	assert.False(t, s.NeedsUnlock)

	// 取出方向不需要授权
	s = run(m, s, ToggleTransactionType{}, SetAmount{FormValue: "10"})
	assert.False(t, s.NeedsUnlock)
}

func TestPassesAreIdempotent(t *testing.T) {
	m := NewMachine(V1)
	s := run(m, m.Initial(), ReceiveMarketData{Data: marketData(t)}, SetAmount{FormValue: "12"})

	again := m.pipeline.Apply(s)
	assert.Equal(t, s, again)
}
