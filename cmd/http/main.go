package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"patient-record-service/internal/app/config"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/app/delivery/http/controllers"
	"patient-record-service/internal/app/delivery/http/middlewares"
	"patient-record-service/internal/app/delivery/http/routers"
	"patient-record-service/internal/app/drivers/database"
	"patient-record-service/internal/app/drivers/logger"
	"patient-record-service/internal/app/drivers/messaging"
	"patient-record-service/internal/app/drivers/storage"
	"patient-record-service/internal/app/services/core/patients"
	"patient-record-service/internal/app/services/shared/events"
	"patient-record-service/internal/app/services/shared/locker"
	"patient-record-service/internal/app/services/shared/redis"
	snapshotStorage "patient-record-service/internal/app/services/shared/storage"
	"patient-record-service/internal/pkg/metrics"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         logger.NewZapLogger(driverConfig, internalConfig),
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if driverConfig.Redis.Enabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if driverConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}
	if driverConfig.Minio.Enabled {
		bootstrap.Minio = storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		bootstrap.Logger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(internalConfig.App.Address, internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		bootstrap.Logger.Info("Server started",
			zap.String("address", server.Addr),
			zap.String("env", internalConfig.App.Env),
		)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrap.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(internalConfig.Metrics.Namespace, registry)

	// Storage
	patientRepository := patients.NewPatientFileRepository(internalConfig.Storage.DataFile, bootstrap.Logger)
	if internalConfig.Storage.AutoCreate {
		err := patientRepository.Initialize(context.Background())
		if err != nil {
			return err
		}
	}

	// Locker
	var lockService contracts.LockerService
	if bootstrap.Redis != nil {
		redisRepository := redis.NewRedisRepository(bootstrap.Redis)
		lockService = locker.NewLockService(redisRepository, bootstrap.Logger)
	} else {
		lockService = locker.NewLocalLockService()
	}
	lockOptions := locker.Options{
		Expiration:    internalConfig.Lock.Expiration,
		RetryInterval: internalConfig.Lock.RetryInterval,
		WaitTimeout:   internalConfig.Lock.WaitTimeout,
	}

	// Events
	eventPublisher := events.NewNoopPublisher()
	if bootstrap.RabbitMQ != nil {
		publisher, err := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.PatientEventQueue, bootstrap.Logger)
		if err != nil {
			return err
		}
		eventPublisher = publisher
	}
	bootstrap.EventsClose = eventPublisher.Close

	// Snapshots
	var snapshots contracts.SnapshotStorage
	if bootstrap.Minio != nil {
		snapshots = snapshotStorage.NewMinioSnapshotStorage(bootstrap.Minio, internalConfig.Minio.BucketName, bootstrap.Logger)
	}

	// Patient
	patientUsecase := patients.NewPatientUsecase(
		patientRepository,
		lockService,
		lockOptions,
		eventPublisher,
		snapshots,
		collector,
		bootstrap.Logger,
	)
	patientController := controllers.NewPatientController(
		bootstrap.Logger,
		patientUsecase,
		time.Duration(internalConfig.App.RequestTimeoutInSeconds)*time.Second,
	)
	infoController := controllers.NewInfoController(internalConfig.App.Version)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(bootstrap.Logger, internalConfig),
		collector,
		infoController,
		patientController,
	)
	return nil
}
