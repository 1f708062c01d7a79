package main

import (
	"fmt"
	"patient-record-service/internal/app/models"
	"patient-record-service/internal/pkg/exceptions"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every record in the data file",
	Long: `Load the data file and run every record through the same validation the
service applies on create. Hand-edited files can hold records the API would
never accept; those are listed with the first failing field.

Exits non-zero when at least one record is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, err := repository.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load patients: %w", err)
		}

		red := color.New(color.FgRed)
		invalid := 0
		for _, patient := range byID(collection) {
			if _, err := models.NewPatient(patient); err != nil {
				invalid++
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", red.Sprint(padRight(patient.ID, 8)), exceptions.FormatFirstValidationError(err))
			}
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d records are invalid", invalid, len(collection))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d records valid\n", color.New(color.FgGreen).Sprint("ok"), len(collection))
		return nil
	},
}
