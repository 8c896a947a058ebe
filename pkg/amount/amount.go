package amount

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// RateDecimals 汇率统一使用 1e18 精度 (与链上 exchangeRate 一致)
const RateDecimals = 18

var (
	ErrInvalidExact = errors.New("invalid exact amount")
	ErrZeroRate     = errors.New("exchange rate must be positive")
)

// Amount 代币金额
// exact: 按 decimals 放大后的整数 (链上表示, 例如 Wei)
// 所有比较都在 exact 上进行，不经过浮点数
type Amount struct {
	exact    *big.Int
	decimals int
}

// New 使用链上整数创建金额
func New(exact *big.Int, decimals int) Amount {
	if exact == nil {
		exact = new(big.Int)
	}
	return Amount{exact: new(big.Int).Set(exact), decimals: decimals}
}

// Zero 返回指定精度的 0
func Zero(decimals int) Amount {
	return Amount{exact: new(big.Int), decimals: decimals}
}

// FromDecimal 将人类可读的 decimal 转为指定精度，多余的小数位直接截断
func FromDecimal(d decimal.Decimal, decimals int) Amount {
	exact := d.Shift(int32(decimals)).Truncate(0).BigInt()
	return Amount{exact: exact, decimals: decimals}
}

// Parse 解析用户输入
// 空字符串、非数字、负数都返回 ok=false (表示 "没有金额"，不是 0)
func Parse(text string, decimals int) (Amount, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Amount{}, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil || d.IsNegative() {
		return Amount{}, false
	}
	return FromDecimal(d, decimals), true
}

// MustParse 仅用于测试和常量
func MustParse(text string, decimals int) Amount {
	a, ok := Parse(text, decimals)
	if !ok {
		panic(fmt.Sprintf("amount: cannot parse %q", text))
	}
	return a
}

func (a Amount) int() *big.Int {
	if a.exact == nil {
		return new(big.Int)
	}
	return a.exact
}

// Exact 返回链上整数的副本
func (a Amount) Exact() *big.Int {
	return new(big.Int).Set(a.int())
}

func (a Amount) Decimals() int {
	return a.decimals
}

// Decimal 返回人类可读的 decimal
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(a.int(), -int32(a.decimals))
}

// Simple 返回浮点近似值，只能用于展示
func (a Amount) Simple() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

func (a Amount) String() string {
	return a.Decimal().String()
}

// Format 保留 places 位小数 (展示用)
func (a Amount) Format(places int32) string {
	return a.Decimal().StringFixed(places)
}

func (a Amount) Sign() int {
	return a.int().Sign()
}

func (a Amount) IsZero() bool {
	return a.Sign() == 0
}

// SetDecimals 调整精度，降低精度时截断
func (a Amount) SetDecimals(decimals int) Amount {
	diff := decimals - a.decimals
	switch {
	case diff == 0:
		return New(a.int(), decimals)
	case diff > 0:
		return Amount{exact: new(big.Int).Mul(a.int(), pow10(diff)), decimals: decimals}
	default:
		return Amount{exact: new(big.Int).Quo(a.int(), pow10(-diff)), decimals: decimals}
	}
}

// Cmp 比较两个金额，精度不同时先对齐到更高的精度
func (a Amount) Cmp(b Amount) int {
	x, y := align(a, b)
	return x.Cmp(y)
}

// Add 结果精度与 a 相同
func (a Amount) Add(b Amount) Amount {
	b = b.SetDecimals(a.decimals)
	return Amount{exact: new(big.Int).Add(a.int(), b.int()), decimals: a.decimals}
}

// Sub 结果精度与 a 相同
func (a Amount) Sub(b Amount) Amount {
	b = b.SetDecimals(a.decimals)
	return Amount{exact: new(big.Int).Sub(a.int(), b.int()), decimals: a.decimals}
}

// Unit 返回该精度下的最小单位 (1 Wei)
func Unit(decimals int) Amount {
	return Amount{exact: big.NewInt(1), decimals: decimals}
}

// ConvertToCredits 底层资产 -> Credits
// credits = floor(amount / rate) + 1 个最小单位
// 多加的 1 个单位保证换回底层资产时不会因截断而少给用户
func ConvertToCredits(a Amount, rate Amount, creditDecimals int) (Amount, error) {
	if rate.Sign() <= 0 {
		return Amount{}, ErrZeroRate
	}
	scaled := new(big.Int).Mul(a.int(), pow10(rate.decimals))
	q := new(big.Int).Quo(scaled, rate.int())
	credits := Amount{exact: q, decimals: a.decimals}.SetDecimals(creditDecimals)
	return credits.Add(Unit(creditDecimals)), nil
}

// ConvertFromCredits Credits -> 底层资产 (截断)
func ConvertFromCredits(credits Amount, rate Amount, decimals int) Amount {
	product := new(big.Int).Mul(credits.int(), rate.int())
	q := new(big.Int).Quo(product, pow10(rate.decimals))
	return Amount{exact: q, decimals: credits.decimals}.SetDecimals(decimals)
}

type amountJSON struct {
	Exact    string `json:"exact"`
	Decimals int    `json:"decimals"`
	Simple   string `json:"simple"`
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{
		Exact:    a.int().String(),
		Decimals: a.decimals,
		Simple:   a.String(),
	})
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw amountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	exact, ok := new(big.Int).SetString(raw.Exact, 10)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidExact, raw.Exact)
	}
	a.exact = exact
	a.decimals = raw.Decimals
	return nil
}

func align(a, b Amount) (*big.Int, *big.Int) {
	if a.decimals == b.decimals {
		return a.int(), b.int()
	}
	if a.decimals > b.decimals {
		return a.int(), b.SetDecimals(a.decimals).int()
	}
	return a.SetDecimals(b.decimals).int(), b.int()
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
