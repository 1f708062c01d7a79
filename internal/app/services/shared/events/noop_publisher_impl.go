package events

import (
	"context"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/app/models"
)

type noopPublisher struct{}

// NewNoopPublisher is used when event publication is disabled.
func NewNoopPublisher() contracts.PatientEventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, eventType string, patientID string, patient *models.Patient) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
