package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"numeric":  "must be a number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientServerBusy                    = "the app is busy, please try again"
	ErrClientPatientNotFound               = "Patient not found"
	ErrClientPatientAlreadyExists          = "Patient already exists"
	ErrClientPatientBMIOutOfRange          = "height and weight produce a bmi out of range"
	ErrClientInvalidSort                   = "Invalid sort"
	ErrClientInvalidOrder                  = "Invalid order"
	ErrClientInvalidRequestBody            = "request body is not a valid patient payload"
	ErrClientTooManyRequests               = "Too many requests on single time-frame"
	ErrClientRouteNotFound                 = "Not Found"
	ErrClientMethodNotAllowed              = "Method Not Allowed"
)

// Error messages for developers
const (
	ErrDevInvalidInput                = "invalid input"
	ErrDevValidationFailed            = "validation failed"
	ErrDevCannotParseJSON             = "cannot parse JSON request body"
	ErrDevCannotMarshalJSON           = "cannot marshal JSON"
	ErrDevServerProcess               = "server failed to process the request"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevMissingRequestID            = "request ID missing from context"
	ErrDevTooManyRequests             = "rate limit exceeded"
	ErrDevRouteNotFound               = "no route matches %s"
	ErrDevMethodNotAllowed            = "method %s not allowed on %s"
	ErrDevPatientNotFound             = "patient %s not found in collection"
	ErrDevPatientAlreadyExists        = "patient %s already exists in collection"
	ErrDevPatientBMIOutOfRange        = "derived bmi is not a finite number"
	ErrDevInvalidSortField            = "unsupported sort field %q"
	ErrDevInvalidSortOrder            = "unsupported sort order %q"
	ErrDevStorageFileMissing          = "patient data file %s does not exist"
	ErrDevStorageRead                 = "failed to read patient data file %s"
	ErrDevStorageDecode               = "patient data file %s is not a well-formed collection"
	ErrDevStorageEncode               = "failed to encode patient collection"
	ErrDevStorageWrite                = "failed to write patient data file %s"
	ErrDevLockAcquireTimeout          = "timed out acquiring lock %s"
	ErrDevLockNotOwned                = "lock %s not owned by this client"
	ErrDevRedisGetData                = "failed to get data from redis"
	ErrDevRedisSetData                = "failed to set data to redis"
	ErrDevRedisDeleteData             = "failed to delete data from redis"
	ErrDevMinioFailedToCreateObject   = "failed to create object in minio bucket %s"
	ErrDevRabbitMQFailedToPublish     = "failed to publish message to queue %s"
	ErrDevRabbitMQFailedToOpenChannel = "failed to open rabbitmq channel"
)
