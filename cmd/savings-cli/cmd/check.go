package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"savings-core/internal/save"
	"savings-core/pkg/amount"

	"github.com/spf13/cobra"
)

// errStateInvalid 让进程以非 0 退出，结果已经打印
var errStateInvalid = errors.New("state is not valid")

type checkOptions struct {
	version        string
	txType         string
	amount         string
	max            bool
	balance        string
	allowance      string
	rate           string
	credits        string
	decimals       int
	creditDecimals int
}

// checkResult 打印到标准输出的结果
type checkResult struct {
	Valid    bool            `json:"valid"`
	Reason   save.ReasonCode `json:"reason,omitempty"`
	State    save.State      `json:"state"`
	Manifest *save.Manifest  `json:"manifest,omitempty"`
}

var checkOpts = checkOptions{}

// checkCmd 代表 check 命令
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "离线运行表单校验",
	Long: `用命令行给出的余额、授权额度和汇率构造行情快照，按顺序投递
ReceiveMarketData / ToggleTransactionType / SetAmount (或 SetMaxAmount)，
以 JSON 输出最终状态。状态不合法时退出码为 1。`,
	Example: `  savings-cli check --amount 10 --balance 100 --allowance 5
  savings-cli check --type withdraw --max --credits 90 --rate 1.1 --version v2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runCheck(checkOpts)
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		if !res.Valid {
			return fmt.Errorf("%w: %s", errStateInvalid, res.Reason)
		}
		return nil
	},
}

func runCheck(opts checkOptions) (*checkResult, error) {
	v, err := save.ParseVersion(opts.version, save.V1)
	if err != nil {
		return nil, err
	}

	data, err := opts.marketData()
	if err != nil {
		return nil, err
	}

	actions := []save.Action{save.ReceiveMarketData{Data: data}}
	switch strings.ToLower(opts.txType) {
	case "", "deposit":
	case "withdraw":
		actions = append(actions, save.ToggleTransactionType{})
	default:
		return nil, fmt.Errorf("unknown transaction type %q", opts.txType)
	}
	if opts.max {
		actions = append(actions, save.SetMaxAmount{})
	} else {
		actions = append(actions, save.SetAmount{FormValue: opts.amount})
	}

	m := save.NewMachine(v)
	st := m.Initial()
	for _, a := range actions {
		st = m.Transition(st, a)
	}

	res := &checkResult{Valid: st.Valid, Reason: st.Error, State: st}
	if st.Valid {
		res.Manifest, err = save.BuildManifest(v, st)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (o checkOptions) marketData() (*save.MarketData, error) {
	parse := func(name, text string, decimals int) (*amount.Amount, error) {
		a, ok := amount.Parse(text, decimals)
		if !ok {
			return nil, fmt.Errorf("invalid --%s %q", name, text)
		}
		return &a, nil
	}

	balance, err := parse("balance", o.balance, o.decimals)
	if err != nil {
		return nil, err
	}
	allowance, err := parse("allowance", o.allowance, o.decimals)
	if err != nil {
		return nil, err
	}
	rate, err := parse("rate", o.rate, amount.RateDecimals)
	if err != nil {
		return nil, err
	}
	if rate.IsZero() {
		return nil, amount.ErrZeroRate
	}
	credits, err := parse("credits", o.credits, o.creditDecimals)
	if err != nil {
		return nil, err
	}
	savings := amount.ConvertFromCredits(*credits, *rate, o.decimals)

	return &save.MarketData{
		Token: save.TokenData{
			Address:   "0x0000000000000000000000000000000000000001",
			Symbol:    "mUSD",
			Decimals:  o.decimals,
			Balance:   balance,
			Allowance: allowance,
		},
		Savings: save.SavingsData{
			Address:        "0x0000000000000000000000000000000000000002",
			ExchangeRate:   rate,
			CreditBalance:  credits,
			CreditDecimals: o.creditDecimals,
			SavingsBalance: &savings,
		},
		FetchedAt: time.Now().UTC(),
	}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkOpts.version, "version", "v1", "储蓄合约版本 (v1/v2)")
	f.StringVar(&checkOpts.txType, "type", "deposit", "deposit 或 withdraw")
	f.StringVar(&checkOpts.amount, "amount", "", "输入框文本")
	f.BoolVar(&checkOpts.max, "max", false, "填入最大金额，忽略 --amount")
	f.StringVar(&checkOpts.balance, "balance", "0", "mUSD 钱包余额")
	f.StringVar(&checkOpts.allowance, "allowance", "0", "授权给储蓄合约的额度")
	f.StringVar(&checkOpts.rate, "rate", "1", "credits 汇率 (1 credit = rate mUSD)")
	f.StringVar(&checkOpts.credits, "credits", "0", "credit 余额")
	f.IntVar(&checkOpts.decimals, "decimals", 18, "mUSD 精度")
	f.IntVar(&checkOpts.creditDecimals, "credit-decimals", 18, "credit 精度")
	rootCmd.AddCommand(checkCmd)
}
