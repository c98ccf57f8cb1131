package main

import (
	"log"
	"os"

	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/connection"
	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/database/seed"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	db, err := connection.ConnectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := seed.SeedUsers(db); err != nil {
		log.Fatal(err)
	}
	if err := seed.SeedProducts(db); err != nil {
		log.Fatal(err)
	}
	log.Println("seed complete")
}
