package main

import (
	"database/sql"
	"log"

	"complaintBack/internal/config"
	"complaintBack/internal/handlers"
	"complaintBack/internal/repositories"
	"complaintBack/internal/services"
	"complaintBack/internal/storage"
)

type application struct {
	errorLog         *log.Logger
	infoLog          *log.Logger
	db               *sql.DB
	complaintHandler *handlers.ComplaintHandler
	complaintRepo    *repositories.ComplaintRepository
	userHandler      *handlers.UserHandler
	userRepo         *repositories.RegisterUserRepository
}

func initializeApp(db *sql.DB, blobs storage.BlobStore, errorLog, infoLog *log.Logger) *application {
	// Repositories
	complaintRepo := repositories.ComplaintRepository{DB: db}
	userRepo := repositories.RegisterUserRepository{DB: db}

	// Services
	complaintService := &services.ComplaintService{
		ComplaintRepo: &complaintRepo,
		Blobs:         blobs,
		ErrorLog:      errorLog,
	}
	userService := &services.UserService{UserRepo: &userRepo}

	// Handlers
	complaintHandler := &handlers.ComplaintHandler{Service: complaintService}
	userHandler := &handlers.UserHandler{Service: userService}

	return &application{
		errorLog:         errorLog,
		infoLog:          infoLog,
		db:               db,
		complaintHandler: complaintHandler,
		complaintRepo:    &complaintRepo,
		userHandler:      userHandler,
		userRepo:         &userRepo,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	// A transaction holds one connection until commit or rollback; excess
	// concurrent intakes queue for a pooled connection instead of failing.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	log.Println("Successfully connected to database")
	return db, nil
}

func newBlobStore(cfg config.Config) (storage.BlobStore, error) {
	switch cfg.Storage.Driver {
	case "s3":
		s3cfg := cfg.Storage.S3
		return storage.NewS3(s3cfg.Endpoint, s3cfg.Region, s3cfg.Bucket, s3cfg.AccessKey, s3cfg.SecretKey), nil
	default:
		dir := cfg.Storage.Dir
		if dir == "" {
			dir = "./uploads"
		}
		return storage.NewDisk(dir)
	}
}
