package constvars

const (
	ResponseUnknown = "unknown"

	PatientCreatedSuccessMessage = "patient created successfully"
	PatientUpdatedSuccessMessage = "patient updated successfully"
	PatientDeletedSuccessMessage = "patient deleted successfully"
	PatientFetchedSuccessMessage = "patient fetched successfully"
	PatientListSuccessMessage    = "patients fetched successfully"
	PatientSortedSuccessMessage  = "patients sorted successfully"
	HealthCheckSuccessMessage    = "ok"
)
