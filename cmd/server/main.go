// Package main implements the entry point for the learning-newword API
// server, which schedules vocabulary reviews with spaced repetition and
// serves the study endpoints.
package main

import (
	"log"

	"github.com/joho/godotenv"
)

// main wires configuration, logging, the database, services and the HTTP
// server together, then blocks until shutdown.
func main() {
	// A missing .env file is fine; real deployments use environment variables.
	_ = godotenv.Load()

	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
