package main

import (
	"patient-record-service/internal/app/config"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/app/services/core/patients"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataFile   string
	repository contracts.PatientRepository
)

var rootCmd = &cobra.Command{
	Use:   "patientctl",
	Short: "Offline maintenance for the patient data file",
	Long: `patientctl works directly on the JSON file the patient service stores
its records in. Stop the service, or make sure nothing else writes the file,
before running normalize.

EXAMPLES:

  patientctl view                          # Every record ordered by id
  patientctl view --sort bmi --order desc  # Heaviest BMI first
  patientctl check                         # Report records that fail validation
  patientctl normalize                     # Recompute bmi and verdict in place`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		repository = patients.NewPatientFileRepository(dataFile, zap.NewNop())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataFile, "data-file", "f", config.NewInternalConfig().Storage.DataFile, "path to the patient data file (APP_DATA_FILE)")
	rootCmd.AddCommand(viewCmd, checkCmd, normalizeCmd)
}
