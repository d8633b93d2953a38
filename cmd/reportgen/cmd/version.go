// Package cmd provides CLI commands for the report generator.
package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"reportgen/internal/report"
)

var versionShort bool // Print only the version number

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Long:  "显示版本号、构建信息、运行平台以及本版本支持的报告格式子类型。",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(Version)
			return
		}
		fmt.Println(GetVersionInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "仅输出版本号")
}

// GetVersionInfo returns the version, build metadata and supported formats.
func GetVersionInfo() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "reportgen %s\n", Version)
	fmt.Fprintf(&sb, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(&sb, "  Git Commit: %s\n", GitCommit)
	fmt.Fprintf(&sb, "  Go Version: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&sb, "  Formats:    %s", strings.Join(report.NewRegistry(nil).GetAll(), ", "))
	return sb.String()
}
