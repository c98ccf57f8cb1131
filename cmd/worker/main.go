package main

import (
	"log"

	"github.com/Picancianmartin/UniformesCoachSite/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger, err := app.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := app.RunWorker(logger); err != nil {
		log.Fatal(err)
	}
}
