package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"patient-record-service/internal/app/config"
	"patient-record-service/internal/app/delivery/http/controllers"
	"patient-record-service/internal/app/delivery/http/middlewares"
	"patient-record-service/internal/app/services/core/patients"
	"patient-record-service/internal/app/services/shared/events"
	"patient-record-service/internal/app/services/shared/locker"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/metrics"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"status_code"`
}

func newTestRouter(t *testing.T, maxRequests int) *chi.Mux {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                    "test",
			MaxRequests:                maxRequests,
			MaxTimeRequestsPerSeconds:  60,
			RequestBodyLimitInMegabyte: 1,
		},
	}

	repository := patients.NewPatientFileRepository(filepath.Join(t.TempDir(), "patients.json"), logger)
	require.NoError(t, repository.Initialize(context.Background()))

	collector := metrics.NewCollector("patient_test", prometheus.NewRegistry())
	usecase := patients.NewPatientUsecase(repository, locker.NewLocalLockService(), locker.DefaultOptions, events.NewNoopPublisher(), nil, collector, logger)

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		collector,
		controllers.NewInfoController(internalConfig.App.Version),
		controllers.NewPatientController(logger, usecase, 5*time.Second),
	)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded envelope
	if strings.HasPrefix(rec.Header().Get(constvars.HeaderContentType), constvars.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

const ananya = `{"id":"P001","name":"Ananya Verma","city":"Guwahati","age":28,"gender":"female","height":1.65,"weight":90}`

func TestRouter_Info(t *testing.T) {
	router := newTestRouter(t, 100)

	t.Run("home", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Patient management system API", body.Message)
		assert.NotEmpty(t, rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("about", func(t *testing.T) {
		_, body := doRequest(t, router, http.MethodGet, "/about", "")
		assert.Equal(t, "A fully functional API to manage patient record", body.Message)
	})

	t.Run("client request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "client-123", rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("unknown route uses error envelope", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodGet, "/nowhere", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, body.Success)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "patient_test_http_requests_total")
	})
}

func TestRouter_PatientLifecycle(t *testing.T) {
	router := newTestRouter(t, 100)

	rec, body := doRequest(t, router, http.MethodPost, "/create", ananya)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "patient created successfully", body.Message)

	t.Run("duplicate create", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodPost, "/create", ananya)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Patient already exists", body.Message)
	})

	t.Run("view includes derived fields and id", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodGet, "/view", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var data map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Equal(t, "P001", data["P001"]["id"])
		assert.Equal(t, 33.06, data["P001"]["bmi"])
		assert.Equal(t, "Obese", data["P001"]["verdict"])
	})

	t.Run("patient view", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodGet, "/patient_view/P001", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Equal(t, "Ananya Verma", data["name"])
	})

	t.Run("patient view missing", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodGet, "/patient_view/P404", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Patient not found", body.Message)
	})

	t.Run("partial edit", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodPut, "/edit/P001", `{"weight":60}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "patient updated successfully", body.Message)

		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Equal(t, "Normal", data["verdict"])
		assert.Equal(t, "Guwahati", data["city"])
	})

	t.Run("edit rejects invalid age", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPut, "/edit/P001", `{"age":0}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("edit missing patient", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPut, "/edit/P404", `{"weight":60}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete then lookup", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodDelete, "/delete/P001", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "patient deleted successfully", body.Message)

		rec, _ = doRequest(t, router, http.MethodGet, "/patient_view/P001", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec, _ = doRequest(t, router, http.MethodDelete, "/delete/P001", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_CreateValidation(t *testing.T) {
	router := newTestRouter(t, 100)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id":`},
		{"empty body", ``},
		{"missing city", `{"id":"P1","name":"A","age":30,"gender":"male","height":1.7,"weight":70}`},
		{"age zero", `{"id":"P1","name":"A","city":"X","age":0,"gender":"male","height":1.7,"weight":70}`},
		{"age 120", `{"id":"P1","name":"A","city":"X","age":120,"gender":"male","height":1.7,"weight":70}`},
		{"bad gender", `{"id":"P1","name":"A","city":"X","age":30,"gender":"robot","height":1.7,"weight":70}`},
		{"zero height", `{"id":"P1","name":"A","city":"X","age":30,"gender":"male","height":0,"weight":70}`},
		{"wrong type", `{"id":"P1","name":"A","city":"X","age":"thirty","gender":"male","height":1.7,"weight":70}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, router, http.MethodPost, "/create", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			assert.False(t, body.Success)
		})
	}

	t.Run("validation message names the field", func(t *testing.T) {
		_, body := doRequest(t, router, http.MethodPost, "/create", `{"id":"P1","name":"A","city":"X","age":30,"gender":"robot","height":1.7,"weight":70}`)
		assert.Contains(t, body.Message, "gender")
	})
}

func TestRouter_Sort(t *testing.T) {
	router := newTestRouter(t, 100)
	for _, patient := range []string{
		`{"id":"A","name":"A","city":"X","age":30,"gender":"male","height":1,"weight":22.1}`,
		`{"id":"B","name":"B","city":"X","age":30,"gender":"male","height":1,"weight":30.5}`,
		`{"id":"C","name":"C","city":"X","age":30,"gender":"male","height":1,"weight":18.0}`,
	} {
		rec, _ := doRequest(t, router, http.MethodPost, "/create", patient)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	sortedIDs := func(t *testing.T, raw json.RawMessage) []string {
		var data []map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &data))
		result := make([]string, 0, len(data))
		for _, item := range data {
			result = append(result, item["id"].(string))
		}
		return result
	}

	t.Run("bmi default order", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodGet, "/sort?sort_by=bmi", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"C", "A", "B"}, sortedIDs(t, body.Data))
	})

	t.Run("bmi desc", func(t *testing.T) {
		_, body := doRequest(t, router, http.MethodGet, "/sort?sort_by=bmi&order=desc", "")
		assert.Equal(t, []string{"B", "A", "C"}, sortedIDs(t, body.Data))
	})

	t.Run("invalid field", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodGet, "/sort?sort_by=name", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid sort", body.Message)
	})

	t.Run("missing field", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/sort", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid order", func(t *testing.T) {
		rec, body := doRequest(t, router, http.MethodGet, "/sort?sort_by=height&order=up", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid order", body.Message)
	})
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := doRequest(t, router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, body.Success)
}
