package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bmiFixture() PatientCollection {
	collection := PatientCollection{
		"A": {ID: "A", Height: 1, Weight: 22.1},
		"B": {ID: "B", Height: 1, Weight: 30.5},
		"C": {ID: "C", Height: 1, Weight: 18.0},
	}
	collection.DeriveAll()
	return collection
}

func ids(patients []Patient) []string {
	result := make([]string, 0, len(patients))
	for _, patient := range patients {
		result = append(result, patient.ID)
	}
	return result
}

func TestPatientCollection(t *testing.T) {
	collection := PatientCollection{}

	t.Run("add then get", func(t *testing.T) {
		require.NoError(t, collection.Add(Patient{ID: "P001"}))

		_, ok := collection.Get("P001")
		assert.True(t, ok)
	})

	t.Run("duplicate add", func(t *testing.T) {
		err := collection.Add(Patient{ID: "P001"})
		assert.ErrorIs(t, err, ErrPatientAlreadyExists)
	})

	t.Run("replace missing", func(t *testing.T) {
		err := collection.Replace(Patient{ID: "P404"})
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})

	t.Run("remove then get", func(t *testing.T) {
		require.NoError(t, collection.Remove("P001"))

		_, ok := collection.Get("P001")
		assert.False(t, ok)
		assert.ErrorIs(t, collection.Remove("P001"), ErrPatientNotFound)
	})
}

func TestSorted(t *testing.T) {
	collection := bmiFixture()

	t.Run("bmi ascending", func(t *testing.T) {
		sorted, err := collection.Sorted("bmi", "asc")
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A", "B"}, ids(sorted))
	})

	t.Run("bmi descending", func(t *testing.T) {
		sorted, err := collection.Sorted("bmi", "desc")
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A", "C"}, ids(sorted))
	})

	t.Run("ties broken by id", func(t *testing.T) {
		sorted, err := collection.Sorted("height", "desc")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, ids(sorted))
	})

	t.Run("invalid field", func(t *testing.T) {
		_, err := collection.Sorted("name", "asc")
		assert.ErrorIs(t, err, ErrInvalidSortField)
	})

	t.Run("invalid order", func(t *testing.T) {
		_, err := collection.Sorted("weight", "sideways")
		assert.ErrorIs(t, err, ErrInvalidSortOrder)
	})

	t.Run("empty collection", func(t *testing.T) {
		sorted, err := PatientCollection{}.Sorted("weight", "asc")
		require.NoError(t, err)
		assert.Empty(t, sorted)
	})
}
