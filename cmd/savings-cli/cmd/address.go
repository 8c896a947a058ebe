package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"savings-core/pkg/bip32"
	"savings-core/pkg/bip39"

	"github.com/spf13/cobra"
)

var (
	errInvalidMnemonic = errors.New("助记词校验失败")
	errIndexOutOfRange = errors.New("账户序号超出范围")
)

type addressOptions struct {
	mnemonic   string
	passphrase string
	index      uint32
	count      uint32
}

var addressOpts addressOptions

// addressCmd 代表 address 命令
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "从助记词推导储户地址",
	Long: `按 BIP-44 路径 m/44'/60'/0'/0/n 推导以太坊地址。
未指定 --mnemonic 时读取环境变量 SAVINGS_MNEMONIC，仍为空则生成一个新的 24 词助记词。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := addressOpts
		if opts.mnemonic == "" {
			opts.mnemonic = os.Getenv("SAVINGS_MNEMONIC")
		}
		return runAddress(cmd.OutOrStdout(), opts)
	},
}

func runAddress(w io.Writer, opts addressOptions) error {
	count := opts.count
	if count == 0 {
		count = 1
	}
	// index+count 用 uint64 计算，避免 uint32 溢出
	if uint64(opts.index)+uint64(count) > uint64(bip32.MaxAccountIndex)+1 {
		return fmt.Errorf("%w: index %d + count %d 超过 2^31", errIndexOutOfRange, opts.index, count)
	}

	mnemonicService := bip39.NewMnemonicService()

	mnemonic := opts.mnemonic
	if mnemonic == "" {
		var err error
		mnemonic, err = mnemonicService.GenerateMnemonic(256) // 24 words
		if err != nil {
			return fmt.Errorf("生成助记词失败: %w", err)
		}
		fmt.Fprintf(w, "助记词 (Mnemonic): \n%s\n", mnemonic)
		fmt.Fprintln(w, "---------------------------------------------------")
	}
	if !mnemonicService.ValidateMnemonic(mnemonic) {
		return errInvalidMnemonic
	}

	seed := mnemonicService.MnemonicToSeed(mnemonic, opts.passphrase)
	wallet, err := bip32.NewMasterKeyFromSeed(seed)
	if err != nil {
		return err
	}

	for i := opts.index; i < opts.index+count; i++ {
		addr, err := wallet.EthereumAccount(i)
		if err != nil {
			return fmt.Errorf("派生第 %d 个账户失败: %w", i, err)
		}
		fmt.Fprintf(w, "Ethereum Address ["+bip32.EthereumAccountPath+"]: %s\n", i, addr)
	}
	return nil
}

func init() {
	f := addressCmd.Flags()
	f.StringVarP(&addressOpts.mnemonic, "mnemonic", "m", "", "BIP-39 助记词")
	f.StringVar(&addressOpts.passphrase, "passphrase", "", "BIP-39 密码 (可选)")
	f.Uint32Var(&addressOpts.index, "index", 0, "起始账户序号")
	f.Uint32Var(&addressOpts.count, "count", 1, "推导的账户数量")
	rootCmd.AddCommand(addressCmd)
}
