// Package cmd implements CLI commands for the report generator.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportgen/internal/manifest"
	"reportgen/internal/model"
	"reportgen/internal/report"
	"reportgen/internal/source"
)

// Command flags
var (
	batchManifest    string // Manifest file path
	batchConcurrency int    // Parallel writes, 0 means config value
	batchRoot        string // Root directory override
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "根据清单文件批量生成报告",
	Long: `读取 YAML 清单文件，加载每个报告的输入并并发生成报告。
所有报告的目标路径会先行解析，路径重复时不写入任何文件。
input 中的相对文件路径以清单文件所在目录为基准解析。
任一报告失败后，尚未开始的报告将被跳过。

清单格式:
  reports:
    - filename: hosts.csv
      directory: daily
      format: text/csv
      input: ./hosts.json

示例:
  reportgen batch -m reports.yaml
  reportgen batch -m reports.yaml --concurrency 8 -r /var/lib/reports`,
	Run: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchManifest, "manifest", "m", "", "清单文件路径")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "并发写入数（默认取配置 batch.concurrency）")
	batchCmd.Flags().StringVarP(&batchRoot, "root", "r", "", "报告根目录（覆盖配置 report.root_dir）")
	batchCmd.MarkFlagRequired("manifest")
}

// runBatch executes the batch command logic.
func runBatch(cmd *cobra.Command, args []string) {
	cfg, logger := loadConfigAndLogger()

	m, err := manifest.Load(batchManifest)
	if err != nil {
		logger.Error().Err(err).Str("path", batchManifest).Msg("failed to load manifest")
		fmt.Fprintf(os.Stderr, "❌ 加载清单失败: %v\n", err)
		os.Exit(1)
	}

	loader := source.NewLoader(&cfg.Input, logger)
	reqs := make([]*model.Request, 0, len(m.Reports))
	for i, entry := range m.Reports {
		result, err := loader.Load(cmd.Context(), entry.Input)
		if err != nil {
			logger.Error().Err(err).Int("index", i).Str("input", entry.Input).Msg("failed to load input")
			fmt.Fprintf(os.Stderr, "❌ 读取第 %d 个报告的输入失败: %v\n", i+1, err)
			os.Exit(1)
		}
		reqs = append(reqs, entry.Request(result))
	}

	generator, err := report.NewGenerator(resolveRootDir(batchRoot, cfg), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 初始化报告生成器失败: %v\n", err)
		os.Exit(1)
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}

	paths, err := generator.GenerateAll(cmd.Context(), reqs, concurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 批量生成失败: %v\n", err)
		os.Exit(exitCode(err))
	}

	for _, path := range paths {
		fmt.Println(path)
	}
}
