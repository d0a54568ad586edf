// Package app wires configuration, the store and the services together for
// the server and the CLI.
package app

import (
	"context"
	"fitu/dashboard/internal/api"
	"fitu/dashboard/internal/config"
	"fitu/dashboard/internal/repository"
	"fitu/dashboard/internal/repository/memory"
	"fitu/dashboard/internal/repository/mongo"
	"fitu/dashboard/internal/service"
	"fitu/dashboard/internal/storage"
	"log"
	"time"
)

// OpenStore opens the store selected by cfg.Driver. The returned close
// function is never nil.
func OpenStore(cfg config.DatabaseConfig) (repository.Store, func(), error) {
	if cfg.Driver == config.DriverMemory {
		log.Println("WARN: Using the in-memory store, data is lost on exit")
		return memory.NewStore(memory.Open()), func() {}, nil
	}

	dbClient, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return repository.Store{}, func() {}, err
	}
	appDB := dbClient.Database(cfg.Name)
	log.Printf("INFO: Connected to MongoDB database %q", cfg.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		log.Println("INFO: Index creation process completed.")
	}()

	closeFn := func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}
	return mongo.NewStore(appDB), closeFn, nil
}

// OpenFileStorage returns the export bucket, or nil when none is configured.
func OpenFileStorage(ctx context.Context, cfg config.S3Config) (storage.FileStorage, error) {
	if !cfg.Enabled() {
		log.Println("INFO: s3.bucket_name is empty, roster publishing is disabled")
		return nil, nil
	}
	return storage.NewS3Storage(ctx, cfg)
}

// NewServices builds every service on store.
func NewServices(cfg config.Config, store repository.Store, fileStorage storage.FileStorage) api.Services {
	rosters := service.NewRosterService(store.Rosters, store.Students)
	return api.Services{
		Auth:          service.NewAuthService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, cfg.Auth.InstructorDomain),
		Accounts:      service.NewAccountService(store.Students, store.Instructors, cfg.Auth.InstructorDomain),
		Instructors:   service.NewInstructorService(store.Instructors),
		Dashboard:     service.NewDashboardService(store.Students, store.Rosters, store.Assignments, store.PerformedExercises),
		Students:      service.NewStudentService(store.Students),
		Rosters:       rosters,
		Exports:       service.NewExportService(rosters, fileStorage),
		Assignments:   service.NewAssignmentService(store.Assignments, store.PerformedExercises, store.Rosters, store.Students),
		Announcements: service.NewAnnouncementService(store.Announcements, store.Rosters),
	}
}
