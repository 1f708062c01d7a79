package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "PTNT_SVC_"
)

const (
	AppEnvironmentDevelopment = "development"
	AppEnvironmentProduction  = "production"
)

const (
	AppBannerMessage = "Patient management system API"
	AppAboutMessage  = "A fully functional API to manage patient record"
)

// Collection lock key shared by every load-mutate-save cycle.
const (
	LockKeyPatientCollection = "lock:patients:collection"
)

const (
	SnapshotObjectPrefix = "patients/snapshot"
)
