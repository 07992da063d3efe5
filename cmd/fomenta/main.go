package main

import (
	"context"
	"log"
	"os"

	"github.com/fomenta-dev/fomenta/db"
	"github.com/fomenta-dev/fomenta/internal/auth"
	"github.com/fomenta-dev/fomenta/internal/handlers"
	"github.com/fomenta-dev/fomenta/internal/router"
	"github.com/fomenta-dev/fomenta/internal/scheduler"
	"github.com/fomenta-dev/fomenta/internal/services"
	"github.com/fomenta-dev/fomenta/internal/storage"
	"github.com/fomenta-dev/fomenta/internal/stores"
	"github.com/joho/godotenv"
)

func main() {
	var err error

	err = godotenv.Load()

	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if err = auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err = db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err = services.EnsureAdminUserFromEnv(stores.NewUsers(db.DB)); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	blobs, err := storage.NewS3StoreFromEnv(context.Background())

	if err != nil {
		log.Fatalf("Failed to configure blob storage: %v", err)
	}

	handlers.Init(services.NewSMTPMailerFromEnv(), blobs)

	scheduler.Initialize(handlers.Notifier())
	defer scheduler.Shutdown()

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err = r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
