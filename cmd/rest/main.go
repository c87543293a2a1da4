package main

import (
	"context"
	"log"

	"ai-interviewprep-be/internal/bootstrap"
	"ai-interviewprep-be/internal/config"
	"ai-interviewprep-be/internal/server"
	"ai-interviewprep-be/internal/tracer"
	"ai-interviewprep-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Usage consumer runs for the lifetime of the process.
	go func() {
		log.Println("Background: starting usage consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
