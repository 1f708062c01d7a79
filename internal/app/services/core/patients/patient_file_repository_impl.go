package patients

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/app/models"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const patientFileMode fs.FileMode = 0o644

// patientDocument is the on-disk shape of a record. The id is the map key and
// is not repeated inside the value.
type patientDocument struct {
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Age     int     `json:"age"`
	Gender  string  `json:"gender"`
	Height  float64 `json:"height"`
	Weight  float64 `json:"weight"`
	BMI     float64 `json:"bmi"`
	Verdict string  `json:"verdict"`
}

type patientFileRepository struct {
	FilePath string
	Log      *zap.Logger
}

func NewPatientFileRepository(filePath string, logger *zap.Logger) contracts.PatientRepository {
	return &patientFileRepository{
		FilePath: filePath,
		Log:      logger,
	}
}

// Load reads the whole collection from disk. Stored bmi and verdict values
// are discarded and recomputed from height and weight.
func (r *patientFileRepository) Load(ctx context.Context) (models.PatientCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, exceptions.ErrServerDeadlineExceeded(err)
	}

	raw, err := os.ReadFile(r.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, exceptions.ErrStorageFileMissing(err, r.FilePath)
		}
		return nil, exceptions.ErrStorageRead(err, r.FilePath)
	}

	var documents map[string]patientDocument
	if err := json.Unmarshal(raw, &documents); err != nil {
		return nil, exceptions.ErrStorageDecode(err, r.FilePath)
	}

	collection := make(models.PatientCollection, len(documents))
	for patientID, document := range documents {
		collection[patientID] = document.toPatient(patientID)
	}
	collection.DeriveAll()

	r.Log.Debug("patientFileRepository.Load succeeded",
		zap.String(constvars.LoggingFilePathKey, r.FilePath),
		zap.Int(constvars.LoggingPatientCountKey, len(collection)),
	)
	return collection, nil
}

// Save overwrites the file with the full collection. The data is written to
// a sibling temporary file first and renamed into place.
func (r *patientFileRepository) Save(ctx context.Context, collection models.PatientCollection) error {
	if err := ctx.Err(); err != nil {
		return exceptions.ErrServerDeadlineExceeded(err)
	}

	documents := make(map[string]patientDocument, len(collection))
	for patientID, patient := range collection {
		patient.Derive()
		documents[patientID] = newPatientDocument(patient)
	}

	raw, err := json.MarshalIndent(documents, "", "  ")
	if err != nil {
		return exceptions.ErrStorageEncode(err)
	}

	if err := r.writeFile(raw); err != nil {
		return exceptions.ErrStorageWrite(err, r.FilePath)
	}

	r.Log.Debug("patientFileRepository.Save succeeded",
		zap.String(constvars.LoggingFilePathKey, r.FilePath),
		zap.Int(constvars.LoggingPatientCountKey, len(collection)),
	)
	return nil
}

// Initialize creates an empty collection file when none exists yet.
func (r *patientFileRepository) Initialize(ctx context.Context) error {
	_, err := os.Stat(r.FilePath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return exceptions.ErrStorageRead(err, r.FilePath)
	}

	if err := os.MkdirAll(filepath.Dir(r.FilePath), 0o755); err != nil {
		return exceptions.ErrStorageWrite(err, r.FilePath)
	}

	r.Log.Info("patientFileRepository.Initialize creating empty patient data file",
		zap.String(constvars.LoggingFilePathKey, r.FilePath),
	)
	return r.Save(ctx, models.PatientCollection{})
}

func (r *patientFileRepository) writeFile(raw []byte) error {
	dir := filepath.Dir(r.FilePath)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.FilePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, patientFileMode); err != nil {
		return err
	}
	return os.Rename(tmpName, r.FilePath)
}

func newPatientDocument(patient models.Patient) patientDocument {
	return patientDocument{
		Name:    patient.Name,
		City:    patient.City,
		Age:     patient.Age,
		Gender:  string(patient.Gender),
		Height:  patient.Height,
		Weight:  patient.Weight,
		BMI:     patient.BMI,
		Verdict: string(patient.Verdict),
	}
}

func (d patientDocument) toPatient(patientID string) models.Patient {
	return models.Patient{
		ID:      patientID,
		Name:    d.Name,
		City:    d.City,
		Age:     d.Age,
		Gender:  models.Gender(d.Gender),
		Height:  d.Height,
		Weight:  d.Weight,
		BMI:     d.BMI,
		Verdict: models.Verdict(d.Verdict),
	}
}
