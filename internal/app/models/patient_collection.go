package models

// PatientCollection maps a patient ID to its record.
type PatientCollection map[string]Patient

func (c PatientCollection) Get(patientID string) (Patient, bool) {
	patient, ok := c[patientID]
	return patient, ok
}

func (c PatientCollection) Add(patient Patient) error {
	if _, exists := c[patient.ID]; exists {
		return ErrPatientAlreadyExists
	}
	c[patient.ID] = patient
	return nil
}

func (c PatientCollection) Replace(patient Patient) error {
	if _, exists := c[patient.ID]; !exists {
		return ErrPatientNotFound
	}
	c[patient.ID] = patient
	return nil
}

func (c PatientCollection) Remove(patientID string) error {
	if _, exists := c[patientID]; !exists {
		return ErrPatientNotFound
	}
	delete(c, patientID)
	return nil
}

// DeriveAll recomputes the derived fields of every record, ignoring whatever
// values were stored.
func (c PatientCollection) DeriveAll() {
	for id, patient := range c {
		patient.Derive()
		c[id] = patient
	}
}
