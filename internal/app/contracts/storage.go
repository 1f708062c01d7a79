package contracts

import (
	"context"
	"patient-record-service/internal/app/models"
	"patient-record-service/internal/pkg/dto/responses"
)

// SnapshotStorage keeps point-in-time copies of the patient collection.
type SnapshotStorage interface {
	UploadSnapshot(ctx context.Context, collection models.PatientCollection) (*responses.SnapshotUpload, error)
}
