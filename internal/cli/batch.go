package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ehiller1/dementia/internal/analyze"
	"github.com/ehiller1/dementia/internal/model"
	"github.com/ehiller1/dementia/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze a directory of transcripts in parallel",
	Long: `Batch analyzes every transcript file (.txt, .html) in a directory
concurrently and writes one JSON and one Markdown report per transcript.

The --caregiver, --patient and --stage settings apply to all files.

Example:
  memorycare batch ./visits
  memorycare batch ./visits --concurrency 8 --output-dir ./reports
  memorycare batch ./visits --stage late`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./memorycare-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&caregiverName, "caregiver", "", "caregiver display name in the transcripts")
	batchCmd.Flags().StringVar(&patientName, "patient", "", "patient display name in the transcripts")
	batchCmd.Flags().StringVar(&stageName, "stage", "moderate", "dementia stage (early, moderate, late)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output.IncludeFooter = cfg.Output.IncludeFooter && !noFooter
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	fmt.Fprintf(os.Stderr, "  Input dir:   %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:  %s\n", outputDir)
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	analyzer, err := analyze.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(analyzer, cfg.Concurrency.Workers)
	results, err := processor.ProcessDir(ctx, dir, analyze.Request{
		CaregiverName: caregiverName,
		PatientName:   patientName,
		Stage:         model.ParseTrainingStage(stageName),
	})
	if err != nil {
		return err
	}

	renderer := analyze.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := reportSlug(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		rendered, err := renderer.RenderJSON(result.Report)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: render JSON: %v\n", result.Path, err)
			continue
		}
		if err := os.WriteFile(jsonPath, []byte(rendered), 0o644); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write JSON: %v\n", result.Path, err)
			continue
		}
		if err := os.WriteFile(mdPath, []byte(renderer.RenderMarkdown(result.Report)), 0o644); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write Markdown: %v\n", result.Path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (grade: %s, %.2f)\n",
			filepath.Base(result.Path), result.Report.Grade, result.Report.OverallScore)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "  Total:     %d transcripts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)

	return nil
}

// reportSlug derives an output file stem from a transcript path
func reportSlug(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, " ", "-")

	if len(base) > 100 {
		base = base[:100]
	}
	return base
}
