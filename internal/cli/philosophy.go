package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ehiller1/dementia/internal/analyze"
	"github.com/ehiller1/dementia/internal/model"
)

var philosophyJSON bool

// philosophyCmd represents the philosophy command
var philosophyCmd = &cobra.Command{
	Use:   "philosophy",
	Short: "Print the ideal seven-minute session script",
	RunE: func(cmd *cobra.Command, args []string) error {
		if philosophyJSON {
			out, err := json.MarshalIndent(map[string]any{
				"ethos":          model.Ethos,
				"ideal_minutes":  model.IdealSessionMinutes,
				"session_phases": model.IdealSession(),
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal philosophy: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Print(analyze.NewRenderer(false).RenderPhilosophy())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(philosophyCmd)

	philosophyCmd.Flags().BoolVar(&philosophyJSON, "json", false, "output as JSON")
}
