package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "savings-cli",
	Short: "mAsset 储蓄命令行工具",
	Long: `离线调试储蓄表单的命令行工具。
支持从 BIP-39 助记词推导储户地址，以及在本地运行存取表单的校验流程。`,
	SilenceUsage: true,
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
