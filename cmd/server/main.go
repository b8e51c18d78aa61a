// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/unclebandit/customer-segmentation/internal/bootstrap"
	"github.com/unclebandit/customer-segmentation/internal/config"
	"github.com/unclebandit/customer-segmentation/internal/controller"
	"github.com/unclebandit/customer-segmentation/internal/handler"
	"github.com/unclebandit/customer-segmentation/internal/ratelimit"
	"github.com/unclebandit/customer-segmentation/internal/server"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	log.Println("MONGODB_URL:", cfg.MongoURL)
	log.Println("MONGODB_URL_KEY:", cfg.MongoURLKey)

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatal("❌ Failed to start:", err)
	}
	defer app.Close()

	rateLimiter := ratelimit.NewRateLimiter(cfg.TrainRatePerMinute)
	defer rateLimiter.Stop()

	r := server.NewRouter(server.Deps{
		Segmentation: &controller.SegmentationController{Service: app.Service},
		UI:           handler.NewUIHandler(cfg.TemplateDir),
		Limiter:      rateLimiter,
		StaticDir:    cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // GET /train trains inside the request
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server running on http://%s\n", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("❌ Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
