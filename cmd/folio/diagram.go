package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/var1d/folio/internal/presentation/graph"
	"github.com/var1d/folio/pkg/domain"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Print the submission status machine as a Mermaid flowchart",
	RunE: func(cmd *cobra.Command, args []string) error {
		var overlay *graph.Overlay
		if current, _ := cmd.Flags().GetString("current"); current != "" {
			status := domain.SubmissionStatus(current)
			if !status.Valid() {
				return fmt.Errorf("unknown status %q", current)
			}
			overlay = &graph.Overlay{Current: status}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diagramCmd)
	diagramCmd.Flags().String("current", "", "Highlight this status")
}
