package requests

import "patient-record-service/internal/app/models"

type CreatePatient struct {
	ID     *string  `json:"id" validate:"required,min=1"`
	Name   *string  `json:"name" validate:"required,min=1"`
	City   *string  `json:"city" validate:"required"`
	Age    *int     `json:"age" validate:"required,gt=0,lt=120"`
	Gender *string  `json:"gender" validate:"required,oneof=male female others"`
	Height *float64 `json:"height" validate:"required,gt=0"`
	Weight *float64 `json:"weight" validate:"required,gt=0"`
}

// UpdatePatient carries a partial update. Absent fields decode to nil and are
// left untouched. The id can never be changed through an update.
type UpdatePatient struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age" validate:"omitempty,gt=0"`
	Gender *string  `json:"gender" validate:"omitempty,oneof=male female others"`
	Height *float64 `json:"height" validate:"omitempty,gt=0"`
	Weight *float64 `json:"weight" validate:"omitempty,gt=0"`
}

type SortPatients struct {
	SortBy string
	Order  string
}

func (r *CreatePatient) ToPatient() models.Patient {
	return models.Patient{
		ID:     stringValue(r.ID),
		Name:   stringValue(r.Name),
		City:   stringValue(r.City),
		Age:    intValue(r.Age),
		Gender: models.Gender(stringValue(r.Gender)),
		Height: floatValue(r.Height),
		Weight: floatValue(r.Weight),
	}
}

func (r *UpdatePatient) ToPatientUpdate() models.PatientUpdate {
	update := models.PatientUpdate{
		Name:   r.Name,
		City:   r.City,
		Age:    r.Age,
		Height: r.Height,
		Weight: r.Weight,
	}
	if r.Gender != nil {
		gender := models.Gender(*r.Gender)
		update.Gender = &gender
	}
	return update
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
