package contracts

import (
	"context"
	"patient-record-service/internal/app/models"
	"patient-record-service/internal/pkg/dto/requests"
)

type PatientUsecase interface {
	FindAll(ctx context.Context) (models.PatientCollection, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	Sort(ctx context.Context, request *requests.SortPatients) ([]models.Patient, error)
	Create(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error)
	Update(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error)
	Delete(ctx context.Context, patientID string) error
}

// PatientRepository persists the whole collection at once. Load always reads
// the backing store; nothing is cached between calls.
type PatientRepository interface {
	Load(ctx context.Context) (models.PatientCollection, error)
	Save(ctx context.Context, collection models.PatientCollection) error
	Initialize(ctx context.Context) error
}

type PatientEventPublisher interface {
	Publish(ctx context.Context, eventType string, patientID string, patient *models.Patient) error
	Close() error
}
