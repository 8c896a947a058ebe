package marketdata

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"savings-core/internal/save"
	"savings-core/pkg/amount"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const erc20ABI = `[
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function","stateMutability":"view"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function","stateMutability":"view"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function","stateMutability":"view"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function","stateMutability":"view"}
]`

const savingsABI = `[
	{"constant":true,"inputs":[],"name":"exchangeRate","outputs":[{"name":"","type":"uint256"}],"type":"function","stateMutability":"view"},
	{"constant":true,"inputs":[{"name":"","type":"address"}],"name":"creditBalances","outputs":[{"name":"","type":"uint256"}],"type":"function","stateMutability":"view"}
]`

// ChainCaller eth_call 加当前区块高度，*ethclient.Client 满足该接口
type ChainCaller interface {
	ethereum.ContractCaller
	BlockNumber(ctx context.Context) (uint64, error)
}

// EthProvider 通过 JSON-RPC eth_call 读取链上行情
// 一次 Fetch 的所有调用固定在同一个区块上
type EthProvider struct {
	caller         ChainCaller
	erc20          abi.ABI
	savings        abi.ABI
	creditDecimals int
}

// NewEthProvider caller 通常是 *ethclient.Client
func NewEthProvider(caller ChainCaller, creditDecimals int) (*EthProvider, error) {
	erc20, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("解析 ERC20 ABI 失败: %w", err)
	}
	savings, err := abi.JSON(strings.NewReader(savingsABI))
	if err != nil {
		return nil, fmt.Errorf("解析 Savings ABI 失败: %w", err)
	}
	if creditDecimals <= 0 {
		creditDecimals = 18
	}
	return &EthProvider{
		caller:         caller,
		erc20:          erc20,
		savings:        savings,
		creditDecimals: creditDecimals,
	}, nil
}

func (p *EthProvider) Fetch(ctx context.Context, q Query) (*save.MarketData, error) {
	for _, a := range []string{q.Account, q.Token, q.Savings} {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, a)
		}
	}
	account := common.HexToAddress(q.Account)
	token := common.HexToAddress(q.Token)
	savings := common.HexToAddress(q.Savings)

	head, err := p.caller.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取区块高度失败: %w", err)
	}
	block := new(big.Int).SetUint64(head)

	var (
		decimals  uint8
		symbol    string
		balance   *big.Int
		allowance *big.Int
		rate      *big.Int
		credits   *big.Int
	)
	calls := []struct {
		to     common.Address
		abi    abi.ABI
		method string
		args   []interface{}
		out    interface{}
	}{
		{token, p.erc20, "decimals", nil, &decimals},
		{token, p.erc20, "symbol", nil, &symbol},
		{token, p.erc20, "balanceOf", []interface{}{account}, &balance},
		{token, p.erc20, "allowance", []interface{}{account, savings}, &allowance},
		{savings, p.savings, "exchangeRate", nil, &rate},
		{savings, p.savings, "creditBalances", []interface{}{account}, &credits},
	}
	for _, c := range calls {
		if err := p.call(ctx, block, c.to, c.abi, c.method, c.out, c.args...); err != nil {
			return nil, err
		}
	}

	tokenDecimals := int(decimals)
	balanceAmt := amount.New(balance, tokenDecimals)
	allowanceAmt := amount.New(allowance, tokenDecimals)
	rateAmt := amount.New(rate, amount.RateDecimals)
	creditAmt := amount.New(credits, p.creditDecimals)
	savingsBalance := amount.ConvertFromCredits(creditAmt, rateAmt, tokenDecimals)

	return &save.MarketData{
		Account: account.Hex(),
		Token: save.TokenData{
			Address:   token.Hex(),
			Symbol:    symbol,
			Decimals:  tokenDecimals,
			Balance:   &balanceAmt,
			Allowance: &allowanceAmt,
		},
		Savings: save.SavingsData{
			Address:        savings.Hex(),
			ExchangeRate:   &rateAmt,
			CreditBalance:  &creditAmt,
			CreditDecimals: p.creditDecimals,
			SavingsBalance: &savingsBalance,
		},
		BlockNumber: head,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// call 执行一次 eth_call 并把唯一的返回值解码到 out
func (p *EthProvider) call(ctx context.Context, block *big.Int, to common.Address, contract abi.ABI, method string, out interface{}, args ...interface{}) error {
	input, err := contract.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("打包 %s 参数失败: %w", method, err)
	}

	raw, err := p.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, block)
	if err != nil {
		return fmt.Errorf("eth_call %s 失败: %w", method, err)
	}

	values, err := contract.Unpack(method, raw)
	if err != nil {
		return fmt.Errorf("解码 %s 返回值失败: %w", method, err)
	}
	if len(values) != 1 {
		return fmt.Errorf("%s 返回值数量异常: %d", method, len(values))
	}

	switch dst := out.(type) {
	case *uint8:
		v, ok := values[0].(uint8)
		if !ok {
			return fmt.Errorf("%s 返回类型异常: %T", method, values[0])
		}
		*dst = v
	case *string:
		v, ok := values[0].(string)
		if !ok {
			return fmt.Errorf("%s 返回类型异常: %T", method, values[0])
		}
		*dst = v
	case **big.Int:
		v, ok := values[0].(*big.Int)
		if !ok {
			return fmt.Errorf("%s 返回类型异常: %T", method, values[0])
		}
		*dst = v
	default:
		return fmt.Errorf("不支持的输出类型 %T", out)
	}
	return nil
}
