package config

import "time"

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	Storage  AppStorage  `mapstructure:"storage"`
	Lock     AppLock     `mapstructure:"lock"`
	Minio    AppMinio    `mapstructure:"minio"`
	RabbitMQ AppRabbitMQ `mapstructure:"rabbitmq"`
	Metrics  AppMetrics  `mapstructure:"metrics"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	RequestTimeoutInSeconds    int    `mapstructure:"request_timeout_in_seconds"`
}

// AppStorage points at the JSON file holding every patient record.
type AppStorage struct {
	DataFile   string `mapstructure:"data_file"`
	AutoCreate bool   `mapstructure:"auto_create"`
}

type AppLock struct {
	Expiration    time.Duration `mapstructure:"expiration"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	WaitTimeout   time.Duration `mapstructure:"wait_timeout"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
}

type AppRabbitMQ struct {
	PatientEventQueue string `mapstructure:"patient_event_queue"`
}

type AppMetrics struct {
	Namespace string `mapstructure:"namespace"`
}
