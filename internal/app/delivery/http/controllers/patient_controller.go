package controllers

import (
	"context"
	"errors"
	"net/http"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/dto/requests"
	"patient-record-service/internal/pkg/exceptions"
	"patient-record-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
	RequestTimeout time.Duration
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase, requestTimeout time.Duration) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
		RequestTimeout: requestTimeout,
	}
}

func (ctrl *PatientController) FindAll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := ctrl.requestID(w, r)
	if !ok {
		return
	}

	ctrl.Log.Debug("Patient listing started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEndpointKey, r.URL.Path),
		zap.String(constvars.LoggingMethodKey, r.Method),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	collection, err := ctrl.PatientUsecase.FindAll(ctx)
	if err != nil {
		ctrl.handleUsecaseError(w, requestID, "Failed to list patients", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patients_listed", requestID,
		zap.Int(constvars.LoggingPatientCountKey, len(collection)),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientListSuccessMessage, collection)
}

func (ctrl *PatientController) FindByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := ctrl.requestID(w, r)
	if !ok {
		return
	}

	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	ctrl.Log.Debug("Retrieved patient ID from URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.FindByID(ctx, patientID)
	if err != nil {
		ctrl.handleUsecaseError(w, requestID, "Failed to find patient", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patient_viewed", requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientFetchedSuccessMessage, patient)
}

func (ctrl *PatientController) Sort(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := ctrl.requestID(w, r)
	if !ok {
		return
	}

	request := &requests.SortPatients{
		SortBy: r.URL.Query().Get(constvars.URLQueryParamSortBy),
		Order:  utils.QueryParamOrDefault(r, constvars.URLQueryParamOrder, constvars.SortOrderAsc),
	}
	ctrl.Log.Debug("Sort parameters parsed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSortFieldKey, request.SortBy),
		zap.String(constvars.LoggingSortOrderKey, request.Order),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	patients, err := ctrl.PatientUsecase.Sort(ctx, request)
	if err != nil {
		ctrl.handleUsecaseError(w, requestID, "Failed to sort patients", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patients_sorted", requestID,
		zap.String(constvars.LoggingSortFieldKey, request.SortBy),
		zap.String(constvars.LoggingSortOrderKey, request.Order),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientSortedSuccessMessage, patients)
}

func (ctrl *PatientController) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := ctrl.requestID(w, r)
	if !ok {
		return
	}

	request := new(requests.CreatePatient)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.Create(ctx, request)
	if err != nil {
		ctrl.handleUsecaseError(w, requestID, "Failed to create patient", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patient_created", requestID,
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientCreatedSuccessMessage, patient)
}

func (ctrl *PatientController) Update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := ctrl.requestID(w, r)
	if !ok {
		return
	}

	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	request := new(requests.UpdatePatient)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.Update(ctx, patientID, request)
	if err != nil {
		ctrl.handleUsecaseError(w, requestID, "Failed to update patient", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patient_updated", requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientUpdatedSuccessMessage, patient)
}

func (ctrl *PatientController) Delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := ctrl.requestID(w, r)
	if !ok {
		return
	}

	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	err := ctrl.PatientUsecase.Delete(ctx, patientID)
	if err != nil {
		ctrl.handleUsecaseError(w, requestID, "Failed to delete patient", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patient_deleted", requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientDeletedSuccessMessage, nil)
}

func (ctrl *PatientController) requestID(w http.ResponseWriter, r *http.Request) (string, bool) {
	requestID := utils.GetRequestID(r.Context())
	if requestID == "" {
		ctrl.Log.Error("Request ID missing from context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	return requestID, true
}

func (ctrl *PatientController) handleUsecaseError(w http.ResponseWriter, requestID, message string, start time.Time, err error) {
	ctrl.Log.Error(message,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingErrorTypeKey, "usecase error"),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		zap.Error(err),
	)
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) && errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
