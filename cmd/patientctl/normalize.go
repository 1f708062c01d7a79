package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite the data file with freshly derived bmi and verdict",
	Long: `Load the data file and save it back. Loading recomputes bmi and verdict
from height and weight, so stale derived values left by hand edits are
replaced. The write is atomic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, err := repository.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load patients: %w", err)
		}

		if err := repository.Save(cmd.Context(), collection); err != nil {
			return fmt.Errorf("failed to save patients: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "normalized %d records in %s\n", len(collection), dataFile)
		return nil
	},
}
