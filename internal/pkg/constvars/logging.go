package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingOperationKey     = "operation"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingErrorTypeKey     = "error_type"
	LoggingBusinessEventKey = "business_event"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"

	LoggingPatientIDKey         = "patient_id"
	LoggingPatientCountKey      = "patient_count"
	LoggingSortFieldKey         = "sort_by"
	LoggingSortOrderKey         = "order"
	LoggingFilePathKey          = "file_path"
	LoggingEventTypeKey         = "event_type"
	LoggingQueueNameKey         = "queue_name"
	LoggingBucketNameKey        = "bucket_name"
	LoggingObjectNameKey        = "object_name"
	LoggingLockKey              = "lock_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingLockStoredValueKey   = "lock_stored_value"
	LoggingLockExpectedValueKey = "lock_expected_value"
)
