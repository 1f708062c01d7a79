package models

import (
	"sort"

	"patient-record-service/internal/pkg/constvars"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = constvars.SortOrderAsc
	SortOrderDesc SortOrder = constvars.SortOrderDesc
)

var sortKeys = map[string]func(Patient) float64{
	constvars.SortFieldHeight: func(p Patient) float64 { return p.Height },
	constvars.SortFieldWeight: func(p Patient) float64 { return p.Weight },
	constvars.SortFieldBMI:    func(p Patient) float64 { return p.BMI },
}

func IsValidSortField(field string) bool {
	_, ok := sortKeys[field]
	return ok
}

func IsValidSortOrder(order string) bool {
	return order == string(SortOrderAsc) || order == string(SortOrderDesc)
}

// Sorted returns every record ordered by field. BMI is read from the
// record's current derived value. Records with equal keys keep ascending ID
// order in both directions so the output is deterministic.
func (c PatientCollection) Sorted(field, order string) ([]Patient, error) {
	key, ok := sortKeys[field]
	if !ok {
		return nil, ErrInvalidSortField
	}
	if !IsValidSortOrder(order) {
		return nil, ErrInvalidSortOrder
	}

	patients := make([]Patient, 0, len(c))
	for _, patient := range c {
		patients = append(patients, patient)
	}
	sort.Slice(patients, func(i, j int) bool {
		return patients[i].ID < patients[j].ID
	})

	descending := order == string(SortOrderDesc)
	sort.SliceStable(patients, func(i, j int) bool {
		if descending {
			return key(patients[i]) > key(patients[j])
		}
		return key(patients[i]) < key(patients[j])
	})
	return patients, nil
}
