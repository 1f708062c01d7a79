package patients

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"patient-record-service/internal/app/models"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/exceptions"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patients.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	return customErr.StatusCode
}

func TestPatientFileRepository_Load(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("recomputes stale derived values", func(t *testing.T) {
		path := writeDataFile(t, `{
			"P001": {"name": "Ananya", "city": "Guwahati", "age": 28, "gender": "female",
			         "height": 1.65, "weight": 90, "bmi": 10, "verdict": "Underweight"}
		}`)
		repository := NewPatientFileRepository(path, logger)

		collection, err := repository.Load(ctx)
		require.NoError(t, err)

		patient, ok := collection.Get("P001")
		require.True(t, ok)
		assert.Equal(t, "P001", patient.ID)
		assert.Equal(t, 33.06, patient.BMI)
		assert.Equal(t, models.VerdictObese, patient.Verdict)
	})

	t.Run("records without derived fields load", func(t *testing.T) {
		path := writeDataFile(t, `{"P002": {"name": "Ravi", "city": "", "age": 35, "gender": "male", "height": 1.75, "weight": 70}}`)
		collection, err := NewPatientFileRepository(path, logger).Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, models.VerdictNormal, collection["P002"].Verdict)
	})

	t.Run("missing file", func(t *testing.T) {
		repository := NewPatientFileRepository(filepath.Join(t.TempDir(), "absent.json"), logger)

		_, err := repository.Load(ctx)
		require.Error(t, err)
		assert.Equal(t, constvars.StatusInternalServerError, statusCodeOf(t, err))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeDataFile(t, `[1, 2, 3]`)

		_, err := NewPatientFileRepository(path, logger).Load(ctx)
		require.Error(t, err)
		assert.Equal(t, constvars.StatusInternalServerError, statusCodeOf(t, err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeDataFile(t, `{}`)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewPatientFileRepository(path, logger).Load(cancelled)
		assert.Error(t, err)
	})
}

func TestPatientFileRepository_Save(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "patients.json")
	repository := NewPatientFileRepository(path, zap.NewNop())

	collection := models.PatientCollection{
		"P001": {ID: "P001", Name: "Ananya", City: "Guwahati", Age: 28, Gender: models.GenderFemale, Height: 1.65, Weight: 90},
	}
	require.NoError(t, repository.Save(ctx, collection))

	t.Run("file omits id and carries derived values", func(t *testing.T) {
		raw, err := os.ReadFile(path)
		require.NoError(t, err)

		var stored map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &stored))

		record := stored["P001"]
		assert.NotContains(t, record, "id")
		assert.Equal(t, 33.06, record["bmi"])
		assert.Equal(t, "Obese", record["verdict"])
	})

	t.Run("no temporary files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("round trip", func(t *testing.T) {
		loaded, err := repository.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Guwahati", loaded["P001"].City)
		assert.Equal(t, models.GenderFemale, loaded["P001"].Gender)
	})
}

func TestPatientFileRepository_Initialize(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "patients.json")
	repository := NewPatientFileRepository(path, zap.NewNop())

	require.NoError(t, repository.Initialize(ctx))

	collection, err := repository.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, collection)

	require.NoError(t, repository.Save(ctx, models.PatientCollection{
		"P001": {ID: "P001", Name: "A", Age: 30, Gender: models.GenderMale, Height: 1.8, Weight: 80},
	}))
	require.NoError(t, repository.Initialize(ctx))

	collection, err = repository.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, collection, 1, "initialize must not clobber an existing file")
}
