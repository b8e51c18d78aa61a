package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/unclebandit/customer-segmentation/internal/bootstrap"
	"github.com/unclebandit/customer-segmentation/internal/config"
	"github.com/unclebandit/customer-segmentation/internal/queue"
	"github.com/unclebandit/customer-segmentation/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}
	// runs are created by the server, so both must share Postgres
	if !cfg.DB.Enabled() {
		log.Fatal("DB_HOST and DB_NAME are required for the worker")
	}

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatal("❌ Failed to start worker:", err)
	}
	defer app.Close()

	jobs, err := app.AMQP.Consume(queue.TrainTopic)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	done := make(chan struct{})
	go func() {
		service.NewWorker(app.Service, jobs).Start()
		close(done)
	}()

	log.Println("Worker running, waiting for training jobs...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Println("Shutting down worker...")
	case <-done:
		log.Println("⚠️ Delivery channel closed")
	}
}
