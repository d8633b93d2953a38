// Package cmd provides CLI commands for the report generator.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information, injected at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Global flags
var (
	cfgFile  string // Config file path
	logLevel string // Log level
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "reportgen",
	Short: "报告生成工具 - 将结果数据写入 CSV/JSON/HTML/PDF/文本报告文件",
	Long: `报告生成工具根据声明的格式（如 text/csv、application/json）
将结果数据写入报告文件，并输出写入文件的绝对路径。

数据流: JSON/YAML 输入（文件、标准输入或 HTTP） → 本工具 → 报告文件

主要功能:
  - 按格式子类型（csv、html、json、pdf、text）选择编码器
  - 自动创建报告子目录
  - CSV 报告的表头取自第一条记录的字段顺序
  - 通过清单文件批量并发生成报告`,
	Version: Version,
	// Run displays help when called without any subcommands
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// init initializes the root command and its flags.
func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径（可选，未指定时使用默认配置）")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (debug, info, warn, error)，覆盖配置文件")

	// Customize version template
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// GetConfigFile returns the config file path from command line flag.
func GetConfigFile() string {
	return cfgFile
}

// GetLogLevel returns the log level from command line flag.
func GetLogLevel() string {
	return logLevel
}
