// internal/server/router.go
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/unclebandit/customer-segmentation/internal/controller"
	"github.com/unclebandit/customer-segmentation/internal/handler"
	"github.com/unclebandit/customer-segmentation/internal/metrics"
	"github.com/unclebandit/customer-segmentation/internal/ratelimit"
)

// Deps is everything the router binds
type Deps struct {
	Segmentation *controller.SegmentationController
	UI           *handler.UIHandler
	Limiter      *ratelimit.RateLimiter
	StaticDir    string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/favicon.ico", d.UI.Favicon)
	r.Get("/test_env", d.UI.TestEnv)

	// Training routes
	r.Group(func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(d.Limiter.Middleware)
		}
		r.Get("/train", d.Segmentation.Train)
		r.Post("/train/jobs", d.Segmentation.EnqueueTraining)
	})
	r.Get("/train/jobs/{id}", d.Segmentation.GetTrainingRun)

	// Prediction routes
	r.Get("/", d.UI.Form)
	r.Post("/", d.Segmentation.Predict)
	r.Get("/model", d.Segmentation.GetModel)

	if d.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir))))
	}
	r.Handle("/metrics", metrics.Handler())

	return r
}
