package patients

import (
	"context"
	"errors"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/app/models"
	"patient-record-service/internal/app/services/shared/locker"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/dto/requests"
	"patient-record-service/internal/pkg/exceptions"
	"patient-record-service/internal/pkg/metrics"
	"patient-record-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository contracts.PatientRepository
	LockService       contracts.LockerService
	LockOptions       locker.Options
	EventPublisher    contracts.PatientEventPublisher
	SnapshotStorage   contracts.SnapshotStorage
	Metrics           *metrics.Collector
	Log               *zap.Logger
}

// NewPatientUsecase wires the patient usecase. snapshotStorage and collector
// may be nil when those integrations are disabled.
func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	lockService contracts.LockerService,
	lockOptions locker.Options,
	eventPublisher contracts.PatientEventPublisher,
	snapshotStorage contracts.SnapshotStorage,
	collector *metrics.Collector,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		PatientRepository: patientRepository,
		LockService:       lockService,
		LockOptions:       lockOptions,
		EventPublisher:    eventPublisher,
		SnapshotStorage:   snapshotStorage,
		Metrics:           collector,
		Log:               logger,
	}
}

func (uc *patientUsecase) FindAll(ctx context.Context) (models.PatientCollection, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var collection models.PatientCollection
	err := uc.withCollectionLock(ctx, func(ctx context.Context) error {
		var err error
		collection, err = uc.load(ctx)
		return err
	})
	if err != nil {
		uc.Log.Error("patientUsecase.FindAll error loading patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("patientUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(collection)),
	)
	return collection, nil
}

func (uc *patientUsecase) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	var patient models.Patient
	err := uc.withCollectionLock(ctx, func(ctx context.Context) error {
		collection, err := uc.load(ctx)
		if err != nil {
			return err
		}

		found, ok := collection.Get(patientID)
		if !ok {
			return exceptions.ErrPatientNotFound(models.ErrPatientNotFound, patientID)
		}
		patient = found
		return nil
	})
	if err != nil {
		uc.Log.Error("patientUsecase.FindByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("patientUsecase.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return &patient, nil
}

func (uc *patientUsecase) Sort(ctx context.Context, request *requests.SortPatients) ([]models.Patient, error) {
	requestID := utils.GetRequestID(ctx)

	order := request.Order
	if order == "" {
		order = constvars.SortOrderAsc
	}

	uc.Log.Info("patientUsecase.Sort called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSortFieldKey, request.SortBy),
		zap.String(constvars.LoggingSortOrderKey, order),
	)

	if !models.IsValidSortField(request.SortBy) {
		return nil, exceptions.ErrInvalidSortField(models.ErrInvalidSortField, request.SortBy)
	}
	if !models.IsValidSortOrder(order) {
		return nil, exceptions.ErrInvalidSortOrder(models.ErrInvalidSortOrder, order)
	}

	var sorted []models.Patient
	err := uc.withCollectionLock(ctx, func(ctx context.Context) error {
		collection, err := uc.load(ctx)
		if err != nil {
			return err
		}

		sorted, err = collection.Sorted(request.SortBy, order)
		return uc.mapModelError(err, "")
	})
	if err != nil {
		uc.Log.Error("patientUsecase.Sort error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("patientUsecase.Sort succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(sorted)),
	)
	return sorted, nil
}

func (uc *patientUsecase) Create(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		uc.Log.Error("patientUsecase.Create error validating request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPatientValidation(err)
	}

	patient, err := models.NewPatient(request.ToPatient())
	if err != nil {
		uc.Log.Error("patientUsecase.Create error building patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, patientValidationError(err)
	}

	var snapshot models.PatientCollection
	err = uc.withCollectionLock(ctx, func(ctx context.Context) error {
		collection, err := uc.load(ctx)
		if err != nil {
			return err
		}

		if err := collection.Add(*patient); err != nil {
			return uc.mapModelError(err, patient.ID)
		}

		if err := uc.save(ctx, collection); err != nil {
			return err
		}
		snapshot = collection
		return nil
	})
	if err != nil {
		uc.Log.Error("patientUsecase.Create error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.PatientsCreatedTotal.Inc()
	}
	uc.afterCommit(ctx, constvars.PatientEventCreated, patient.ID, patient, snapshot)

	uc.Log.Info("patientUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return patient, nil
}

func (uc *patientUsecase) Update(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		uc.Log.Error("patientUsecase.Update error validating request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPatientValidation(err)
	}

	var (
		updated  *models.Patient
		snapshot models.PatientCollection
	)
	err := uc.withCollectionLock(ctx, func(ctx context.Context) error {
		collection, err := uc.load(ctx)
		if err != nil {
			return err
		}

		existing, ok := collection.Get(patientID)
		if !ok {
			return exceptions.ErrPatientNotFound(models.ErrPatientNotFound, patientID)
		}

		updated, err = existing.ApplyUpdate(request.ToPatientUpdate())
		if err != nil {
			return patientValidationError(err)
		}

		if err := collection.Replace(*updated); err != nil {
			return uc.mapModelError(err, patientID)
		}

		if err := uc.save(ctx, collection); err != nil {
			return err
		}
		snapshot = collection
		return nil
	})
	if err != nil {
		uc.Log.Error("patientUsecase.Update error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.PatientsUpdatedTotal.Inc()
	}
	uc.afterCommit(ctx, constvars.PatientEventUpdated, patientID, updated, snapshot)

	uc.Log.Info("patientUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return updated, nil
}

func (uc *patientUsecase) Delete(ctx context.Context, patientID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	var snapshot models.PatientCollection
	err := uc.withCollectionLock(ctx, func(ctx context.Context) error {
		collection, err := uc.load(ctx)
		if err != nil {
			return err
		}

		if err := collection.Remove(patientID); err != nil {
			return uc.mapModelError(err, patientID)
		}

		if err := uc.save(ctx, collection); err != nil {
			return err
		}
		snapshot = collection
		return nil
	})
	if err != nil {
		uc.Log.Error("patientUsecase.Delete error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return err
	}

	if uc.Metrics != nil {
		uc.Metrics.PatientsDeletedTotal.Inc()
	}
	uc.afterCommit(ctx, constvars.PatientEventDeleted, patientID, nil, snapshot)

	uc.Log.Info("patientUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}

func (uc *patientUsecase) withCollectionLock(ctx context.Context, fn func(ctx context.Context) error) error {
	start := time.Now()
	return locker.WithLock(ctx, uc.LockService, constvars.LockKeyPatientCollection, uc.LockOptions, uc.Log, func(ctx context.Context) error {
		if uc.Metrics != nil {
			uc.Metrics.LockWaitDuration.Observe(time.Since(start).Seconds())
		}
		return fn(ctx)
	})
}

func (uc *patientUsecase) load(ctx context.Context) (models.PatientCollection, error) {
	if uc.Metrics != nil {
		defer uc.Metrics.ObserveStorage("load", time.Now())
	}
	return uc.PatientRepository.Load(ctx)
}

func (uc *patientUsecase) save(ctx context.Context, collection models.PatientCollection) error {
	if uc.Metrics != nil {
		defer uc.Metrics.ObserveStorage("save", time.Now())
	}
	return utils.LogOperation(uc.Log, "patientRepository.Save", utils.GetRequestID(ctx), func() error {
		return uc.PatientRepository.Save(ctx, collection)
	}, zap.Int(constvars.LoggingPatientCountKey, len(collection)))
}

// afterCommit runs the side effects of a persisted mutation. Failures are
// logged and counted but never surface to the caller.
func (uc *patientUsecase) afterCommit(ctx context.Context, eventType, patientID string, patient *models.Patient, collection models.PatientCollection) {
	requestID := utils.GetRequestID(ctx)

	if uc.EventPublisher != nil {
		if err := uc.EventPublisher.Publish(ctx, eventType, patientID, patient); err != nil {
			uc.Log.Error("patientUsecase.afterCommit error publishing event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEventTypeKey, eventType),
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err),
			)
			uc.countSideEffectFailure("event")
		}
	}

	if uc.SnapshotStorage != nil {
		if _, err := uc.SnapshotStorage.UploadSnapshot(ctx, collection); err != nil {
			uc.Log.Error("patientUsecase.afterCommit error uploading snapshot",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEventTypeKey, eventType),
				zap.Error(err),
			)
			uc.countSideEffectFailure("snapshot")
		}
	}
}

func (uc *patientUsecase) countSideEffectFailure(kind string) {
	if uc.Metrics != nil {
		uc.Metrics.SideEffectFailuresTotal.WithLabelValues(kind).Inc()
	}
}

// patientValidationError maps a record construction failure to a 422.
func patientValidationError(err error) error {
	if errors.Is(err, models.ErrBMIOutOfRange) {
		return exceptions.ErrPatientBMIOutOfRange(err)
	}
	return exceptions.ErrPatientValidation(err)
}

func (uc *patientUsecase) mapModelError(err error, patientID string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrPatientNotFound):
		return exceptions.ErrPatientNotFound(err, patientID)
	case errors.Is(err, models.ErrPatientAlreadyExists):
		return exceptions.ErrPatientAlreadyExists(err, patientID)
	case errors.Is(err, models.ErrInvalidSortField):
		return exceptions.ErrInvalidSortField(err, "")
	case errors.Is(err, models.ErrInvalidSortOrder):
		return exceptions.ErrInvalidSortOrder(err, "")
	default:
		return exceptions.ErrServerProcess(err)
	}
}
