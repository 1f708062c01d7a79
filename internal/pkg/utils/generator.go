package utils

import (
	"fmt"
	"patient-record-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateLockValue() string {
	return uuid.NewString()
}

func GenerateEventID() string {
	return uuid.NewString()
}

// GenerateSnapshotObjectName builds a sortable object name such as
// patients/snapshot_20240131_150405.000000000.json.
func GenerateSnapshotObjectName(prefix string, at time.Time) string {
	timestamp := at.UTC().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s_%s.json", prefix, timestamp)
}
