package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/Apurer/equipment-lending-api/internal/app/api"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("equipment lending API stopped: %v", err)
	}
}
