package main

import (
	"log"
	"os"

	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/connection"
	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/database"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	db, err := connection.ConnectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, os.Getenv("MIGRATIONS_DIR")); err != nil {
		log.Fatal(err)
	}
	log.Println("migrations applied")
}
