package models

import (
	"math"
	"patient-record-service/internal/pkg/utils"
)

// Patient is a single patient record. BMI and Verdict are derived from
// Height and Weight and must only be set through Derive.
type Patient struct {
	ID      string  `json:"id" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	City    string  `json:"city"`
	Age     int     `json:"age" validate:"gt=0,lt=120"`
	Gender  Gender  `json:"gender" validate:"oneof=male female others"`
	Height  float64 `json:"height" validate:"gt=0"`
	Weight  float64 `json:"weight" validate:"gt=0"`
	BMI     float64 `json:"bmi"`
	Verdict Verdict `json:"verdict"`
}

// PatientUpdate holds the fields of a partial update. A nil field is left
// untouched when merged.
type PatientUpdate struct {
	Name   *string
	City   *string
	Age    *int
	Gender *Gender
	Height *float64
	Weight *float64
}

// NewPatient validates every constraint of candidate and returns a copy with
// its derived fields populated. Any violation fails the whole construction.
func NewPatient(candidate Patient) (*Patient, error) {
	patient := candidate
	if err := patient.Validate(); err != nil {
		return nil, err
	}
	patient.Derive()
	return &patient, nil
}

// Validate checks the field constraints, then rejects measurements whose BMI
// is not a finite number.
func (p *Patient) Validate() error {
	if err := utils.ValidateStruct(p); err != nil {
		return err
	}
	if !isFinite(CalculateBMI(p.Height, p.Weight)) {
		return ErrBMIOutOfRange
	}
	return nil
}

// Derive recomputes BMI and Verdict from the current Height and Weight. A
// record that cannot produce a finite BMI gets 0 and an empty verdict.
func (p *Patient) Derive() {
	bmi := CalculateBMI(p.Height, p.Weight)
	if p.Height <= 0 || !isFinite(bmi) {
		p.BMI = 0
		p.Verdict = ""
		return
	}
	p.BMI = bmi
	p.Verdict = ClassifyBMI(p.BMI)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ApplyUpdate merges update into a copy of p, recomputes derived fields and
// revalidates the result. The receiver is never modified and the ID is
// never changed.
func (p Patient) ApplyUpdate(update PatientUpdate) (*Patient, error) {
	merged := p
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.City != nil {
		merged.City = *update.City
	}
	if update.Age != nil {
		merged.Age = *update.Age
	}
	if update.Gender != nil {
		merged.Gender = *update.Gender
	}
	if update.Height != nil {
		merged.Height = *update.Height
	}
	if update.Weight != nil {
		merged.Weight = *update.Weight
	}
	return NewPatient(merged)
}

func (u PatientUpdate) IsEmpty() bool {
	return u.Name == nil && u.City == nil && u.Age == nil && u.Gender == nil && u.Height == nil && u.Weight == nil
}
