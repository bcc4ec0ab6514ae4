package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ehiller1/dementia/internal/analyze"
	"github.com/ehiller1/dementia/internal/model"
)

var (
	caregiverName string
	patientName   string
	stageName     string
	outFormat     string
	outPath       string
	noFooter      bool
	llmEnabled    bool
	llmProvider   string
	llmModel      string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <transcript-file>",
	Short: "Analyze one conversation transcript and generate a training report",
	Long: `Analyze scores a caregiver-patient transcript against the four care
principles, detects forbidden patterns, checks visit structure, and
produces prioritized recommendations.

Transcripts are plain text with one line per turn ("Name: text"); HTML
exports are converted automatically.

Example:
  memorycare analyze visit.txt --caregiver Sarah --patient Dad
  memorycare analyze visit.txt --stage late --format markdown -o report.md
  memorycare analyze visit.txt --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&caregiverName, "caregiver", "", "caregiver display name in the transcript")
	analyzeCmd.Flags().StringVar(&patientName, "patient", "", "patient display name in the transcript")
	analyzeCmd.Flags().StringVar(&stageName, "stage", "moderate", "dementia stage (early, moderate, late)")
	analyzeCmd.Flags().StringVar(&outFormat, "format", "summary", "output format (summary, json, markdown)")
	analyzeCmd.Flags().StringVarP(&outPath, "output", "o", "", "write report to file instead of stdout")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM coaching note generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output.IncludeFooter = cfg.Output.IncludeFooter && !noFooter
	applyLLMFlags(cfg)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	analyzer, err := analyze.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := analyzer.AnalyzeSession(ctx, analyze.Request{
		Transcript:    string(data),
		CaregiverName: caregiverName,
		PatientName:   patientName,
		Stage:         model.ParseTrainingStage(stageName),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Parsed %d turns\n", report.TurnCount)
		fmt.Fprintf(os.Stderr, "✓ Grade %s (%.2f)\n", report.Grade, report.OverallScore)
		fmt.Fprintf(os.Stderr, "✓ %d violation(s), %d phase(s) detected\n",
			len(report.Violations), report.PhaseAnalysis.PhaseCount)
		if report.Coaching != nil && report.Coaching.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Coaching note via %s/%s\n", report.Coaching.Provider, report.Coaching.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	return writeReport(report, cfg, outFormat, outPath)
}

// applyLLMFlags overlays the --llm flags onto the loaded configuration
func applyLLMFlags(cfg *model.Config) {
	if !llmEnabled {
		return
	}
	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
}

// writeReport renders the report in the requested format to outPath or
// stdout
func writeReport(report *model.TrainingReport, cfg *model.Config, format, outPath string) error {
	renderer := analyze.NewRenderer(cfg.Output.IncludeFooter)

	var out string
	switch format {
	case "json":
		rendered, err := renderer.RenderJSON(report)
		if err != nil {
			return err
		}
		out = rendered
	case "markdown", "md":
		out = renderer.RenderMarkdown(report)
	case "summary":
		out = renderer.RenderSummary(report)
	default:
		return fmt.Errorf("unknown format %q (summary, json, markdown)", format)
	}

	if outPath == "" {
		fmt.Println(out)
		return nil
	}

	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outPath)
	}
	return nil
}
