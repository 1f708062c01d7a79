package main

import (
	"fmt"
	"patient-record-service/internal/app/models"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	viewSort  string
	viewOrder string
)

var viewCmd = &cobra.Command{
	Use:     "view",
	Aliases: []string{"ls"},
	Short:   "List patient records",
	Long: `List every patient record with its derived BMI and verdict.

Records are ordered by id unless --sort is given. Valid sort fields are
height, weight and bmi; ties keep id order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, err := repository.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load patients: %w", err)
		}

		if len(collection) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No patients found.")
			return nil
		}

		ordered := byID(collection)
		if viewSort != "" {
			ordered, err = collection.Sorted(viewSort, viewOrder)
			if err != nil {
				return fmt.Errorf("cannot sort by %q %q: %w", viewSort, viewOrder, err)
			}
		}

		faint := color.New(color.Faint)
		for _, patient := range ordered {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %3d %-7s %5.2fm %6.2fkg %6.2f %s\n",
				padRight(patient.ID, 8),
				padRight(truncate(patient.Name, 24), 24),
				patient.Age,
				patient.Gender,
				patient.Height,
				patient.Weight,
				patient.BMI,
				verdictColor(patient.Verdict).Sprint(patient.Verdict),
			)
			if patient.City != "" {
				fmt.Fprintln(cmd.OutOrStdout(), faint.Sprintf("         %s", patient.City))
			}
		}
		return nil
	},
}

func init() {
	viewCmd.Flags().StringVarP(&viewSort, "sort", "s", "", "sort field: height, weight or bmi")
	viewCmd.Flags().StringVarP(&viewOrder, "order", "o", "asc", "sort order: asc or desc")
}

func byID(collection models.PatientCollection) []models.Patient {
	ordered := make([]models.Patient, 0, len(collection))
	for _, patient := range collection {
		ordered = append(ordered, patient)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

func verdictColor(verdict models.Verdict) *color.Color {
	switch verdict {
	case models.VerdictNormal:
		return color.New(color.FgGreen)
	case models.VerdictUnderweight, models.VerdictOverweight:
		return color.New(color.FgYellow)
	case models.VerdictObese:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + fmt.Sprintf("%*s", length-len(s), "")
}
