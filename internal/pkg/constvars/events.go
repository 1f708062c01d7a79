package constvars

const (
	PatientEventCreated = "patient.created"
	PatientEventUpdated = "patient.updated"
	PatientEventDeleted = "patient.deleted"
)

const (
	RabbitMQHeaderMessageType     = "message_type"
	RabbitMQHeaderRequeueStrategy = "requeue_strategy"
	RabbitMQMessageTypeJSON       = "JSON"
	RabbitMQRequeueStrategyDrop   = "DROP"
)
