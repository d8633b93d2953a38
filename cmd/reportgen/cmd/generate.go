// Package cmd implements CLI commands for the report generator.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportgen/internal/model"
	"reportgen/internal/report"
	"reportgen/internal/source"
)

// Command flags
var (
	genFilename  string // Report file name
	genDirectory string // Subdirectory below the root
	genFormat    string // Declared format, e.g. text/csv
	genInput     string // Input location
	genRoot      string // Root directory override
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "生成单个报告文件",
	Long: `读取结果数据并按声明的格式写入报告文件，成功后在标准输出打印文件的绝对路径。

格式取 "<type>/<subtype>" 中的子类型：csv、html、json、pdf、text。
html、pdf 和 text 目前与 json 相同，写入结果的 JSON 文本。
CSV 报告要求输入为字段一致的记录数组，空数组写入 "No Results Found"。

示例:
  # 从文件生成 CSV 报告
  reportgen generate -n hosts.csv -f text/csv -i hosts.json

  # 写入子目录（自动创建）
  reportgen generate -n out.json -d reports/2024 -f application/json -i result.json

  # 从标准输入读取
  cat result.json | reportgen generate -n out.json -i -

  # 从 HTTP 接口读取
  reportgen generate -n out.csv -f text/csv -i https://example.com/api/rows`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genFilename, "filename", "n", "", "报告文件名（原样使用，不自动添加扩展名）")
	generateCmd.Flags().StringVarP(&genDirectory, "directory", "d", "", "根目录下的子目录（不存在时自动创建）")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "", "报告格式，如 text/csv（默认取配置 report.default_format）")
	generateCmd.Flags().StringVarP(&genInput, "input", "i", "", "输入位置：文件路径、- 表示标准输入、或 http(s) URL；为空时结果为 null")
	generateCmd.Flags().StringVarP(&genRoot, "root", "r", "", "报告根目录（覆盖配置 report.root_dir）")
	generateCmd.MarkFlagRequired("filename")
}

// runGenerate executes the generate command logic.
func runGenerate(cmd *cobra.Command, args []string) {
	cfg, logger := loadConfigAndLogger()

	format := genFormat
	if format == "" {
		format = cfg.Report.DefaultFormat
	}

	loader := source.NewLoader(&cfg.Input, logger)
	result, err := loader.Load(cmd.Context(), genInput)
	if err != nil {
		logger.Error().Err(err).Str("input", genInput).Msg("failed to load input")
		fmt.Fprintf(os.Stderr, "❌ 读取输入失败: %v\n", err)
		os.Exit(1)
	}

	generator, err := report.NewGenerator(resolveRootDir(genRoot, cfg), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 初始化报告生成器失败: %v\n", err)
		os.Exit(1)
	}

	path, err := generator.Generate(&model.Request{
		Filename:  genFilename,
		Directory: genDirectory,
		Format:    format,
		Result:    result,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 报告生成失败: %v\n", err)
		os.Exit(exitCode(err))
	}

	fmt.Println(path)
}

// exitCode maps generation errors to process exit codes:
// 2 for request errors the caller must fix, 1 for everything else.
func exitCode(err error) int {
	var unsupported *report.UnsupportedFormatError
	if errors.As(err, &unsupported) || errors.Is(err, report.ErrInvalidRequest) || errors.Is(err, report.ErrDuplicatePath) {
		return 2
	}
	return 1
}
