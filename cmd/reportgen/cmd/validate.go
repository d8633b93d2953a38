// Package cmd implements CLI commands for the report generator.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportgen/internal/config"
	"reportgen/internal/report"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "验证配置文件",
	Long: `加载并验证配置文件，检查必填字段、取值范围，
并确认 report.default_format 的子类型有对应的报告编码器。`,
	Run: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate executes the validate command logic.
func runValidate(cmd *cobra.Command, args []string) {
	configPath := GetConfigFile()
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "❌ 请通过 --config 指定配置文件")
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 配置验证失败: %v\n", err)
		os.Exit(1)
	}

	if err := checkDefaultFormat(cfg, report.NewRegistry(nil)); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 配置验证失败: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("✅ 配置文件验证通过: %s\n", configPath)
	fmt.Printf("   报告根目录: %s\n", cfg.Report.RootDir)
	fmt.Printf("   默认格式:   %s\n", cfg.Report.DefaultFormat)
}

// checkDefaultFormat reports whether the configured default format resolves
// to a registered writer.
func checkDefaultFormat(cfg *config.Config, registry *report.Registry) error {
	if _, err := registry.Resolve(cfg.Report.DefaultFormat); err != nil {
		return fmt.Errorf("report.default_format: %w", err)
	}
	return nil
}
