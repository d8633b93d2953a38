// Package cmd implements CLI commands for the report generator.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reportgen/internal/report"
)

// formatsCmd represents the formats command.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "列出支持的报告格式",
	Long:  "列出可用作格式子类型的报告格式，例如 text/csv 中的 csv。",
	Run: func(cmd *cobra.Command, args []string) {
		for _, format := range report.NewRegistry(nil).GetAll() {
			fmt.Println(format)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
