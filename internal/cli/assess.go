package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ehiller1/dementia/internal/safety"
)

var assessJSON bool

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess <message>",
	Short: "Classify one patient message into a safety risk tier",
	Long: `Assess runs the stateless tiered safety classifier over a single
message. Tiers in priority order: critical (crisis language), elevated
(distress), monitor (agitation), clear. The confusion detector runs
independently.

This command has no side effects; it records nothing. Use the server's
monitor endpoint for live conversations.

Example:
  memorycare assess "I'm scared and I can't breathe"
  memorycare assess --json "What a nice day"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "output as JSON")
}

func runAssess(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	classifier := safety.NewClassifier()
	assessment := classifier.Assess(message)
	confusion := safety.DetectConfusion(message)

	if assessJSON {
		out, err := json.MarshalIndent(map[string]any{
			"assessment": assessment,
			"confusion":  confusion,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal assessment: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Tier:       %s\n", assessment.Tier)
	fmt.Printf("Risk level: %s\n", assessment.RiskLevel)
	if len(assessment.MatchedKeywords) > 0 {
		fmt.Printf("Matched:    %s\n", strings.Join(assessment.MatchedKeywords, ", "))
	}
	if confusion {
		fmt.Printf("Confusion:  yes\n")
	}
	if len(assessment.RecommendedActions) > 0 {
		fmt.Println("Actions:")
		for _, action := range assessment.RecommendedActions {
			fmt.Printf("  - %s\n", action)
		}
	}

	return nil
}
