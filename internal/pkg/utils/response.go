package utils

import (
	"errors"
	"net/http"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/dto/responses"
	"patient-record-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BuildErrorResponse logs err and writes its envelope. Errors that are not a
// CustomError are reported to the client as a generic 500.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) {
		log.Error(err.Error(), zap.Int(constvars.LoggingStatusCodeKey, constvars.StatusInternalServerError))
		writeJSON(w, constvars.StatusInternalServerError, exceptions.CustomError{
			StatusCode:    constvars.StatusInternalServerError,
			ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		})
		return
	}

	fields := []zap.Field{zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode)}
	if customErr.Location != nil {
		fields = append(fields, zap.Any("location", customErr.Location))
	}
	log.Error(customErr.DevMessage, fields...)

	response := exceptions.CustomError{
		StatusCode:    customErr.StatusCode,
		ClientMessage: customErr.ClientMessage,
	}
	if exposeDevDetails() {
		response.DevMessage = customErr.DevMessage
		response.Location = customErr.Location
	}
	writeJSON(w, customErr.StatusCode, response)
}

func exposeDevDetails() bool {
	return GetEnvString("APP_ENV", constvars.AppEnvironmentDevelopment) != constvars.AppEnvironmentProduction
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
