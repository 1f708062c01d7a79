package utils

import (
	"context"
	"time"

	"patient-record-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// LogOperation runs fn and logs its outcome and duration under operation.
// Extra fields are attached to both the success and the failure entry.
func LogOperation(logger *zap.Logger, operation string, requestID string, fn func() error, fields ...zap.Field) error {
	start := time.Now()
	err := fn()

	allFields := append(baseFields(requestID,
		zap.String(constvars.LoggingOperationKey, operation),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		zap.Bool(constvars.LoggingSuccessKey, err == nil),
	), fields...)

	if err != nil {
		logger.Error("Operation failed", append(allFields, zap.Error(err))...)
		return err
	}

	logger.Debug("Operation completed", allFields...)
	return nil
}

// LogBusinessEvent records a domain level event such as a patient being
// created or a listing being served.
func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	allFields := append(baseFields(requestID,
		zap.String(constvars.LoggingBusinessEventKey, event),
	), fields...)

	logger.Info("Business event occurred", allFields...)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func baseFields(requestID string, fields ...zap.Field) []zap.Field {
	return append([]zap.Field{zap.String(constvars.LoggingRequestIDKey, requestID)}, fields...)
}
