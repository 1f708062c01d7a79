package storage

import (
	"bytes"
	"context"
	"io"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/app/models"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/dto/responses"
	"patient-record-service/internal/pkg/exceptions"
	"patient-record-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectPutter is the subset of *minio.Client used for snapshots.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioSnapshotStorage struct {
	MinioClient ObjectPutter
	BucketName  string
	Log         *zap.Logger
	now         func() time.Time
}

func NewMinioSnapshotStorage(minioClient ObjectPutter, bucketName string, logger *zap.Logger) contracts.SnapshotStorage {
	return &minioSnapshotStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
		now:         time.Now,
	}
}

func (m *minioSnapshotStorage) UploadSnapshot(ctx context.Context, collection models.PatientCollection) (*responses.SnapshotUpload, error) {
	requestID := utils.GetRequestID(ctx)

	encoded, err := json.Marshal(collection)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := utils.GenerateSnapshotObjectName(constvars.SnapshotObjectPrefix, m.now())
	_, err = m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(encoded),
		int64(len(encoded)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return nil, exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	m.Log.Info("minioSnapshotStorage.UploadSnapshot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, m.BucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingPatientCountKey, len(collection)),
	)
	return &responses.SnapshotUpload{
		Bucket:       m.BucketName,
		ObjectName:   objectName,
		PatientCount: len(collection),
	}, nil
}
