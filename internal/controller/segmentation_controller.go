// internal/controller/segmentation_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/customer-segmentation/internal/errors"
	"github.com/unclebandit/customer-segmentation/internal/service"
)

type SegmentationController struct {
	Service *service.SegmentationService
}

// Train runs the training pipeline synchronously
func (c *SegmentationController) Train(w http.ResponseWriter, r *http.Request) {
	if _, err := c.Service.Train(r.Context()); err != nil {
		log.Println("❌ Training failed:", err)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Training successful!",
	})
}

// Predict assigns a cluster to the posted customer
func (c *SegmentationController) Predict(w http.ResponseWriter, r *http.Request) {
	rec, details := decodeCustomer(r.Body)
	if len(details) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"detail": details,
		})
		return
	}

	cluster, err := c.Service.Predict(r.Context(), rec)
	if err != nil {
		log.Println("❌ Prediction failed:", err)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"predicted_cluster": cluster,
	})
}

// EnqueueTraining queues a training run and returns it immediately
func (c *SegmentationController) EnqueueTraining(w http.ResponseWriter, r *http.Request) {
	run, err := c.Service.EnqueueTraining(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrAsyncDisabled) {
			status = http.StatusServiceUnavailable
		}
		respondError(w, status, err)
		return
	}

	respondJSON(w, http.StatusAccepted, run)
}

func (c *SegmentationController) GetTrainingRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := c.Service.GetTrainingRun(r.Context(), id)
	if err != nil {
		var notFound *appErrors.ErrTrainingRunNotFound
		switch {
		case errors.As(err, &notFound):
			respondError(w, http.StatusNotFound, err)
		case errors.Is(err, service.ErrAsyncDisabled):
			respondError(w, http.StatusServiceUnavailable, err)
		default:
			respondError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respondJSON(w, http.StatusOK, run)
}

// GetModel describes the model predictions are served from
func (c *SegmentationController) GetModel(w http.ResponseWriter, r *http.Request) {
	m, err := c.Service.LatestModel(r.Context())
	if err != nil {
		var notFound *appErrors.ErrModelNotFound
		if errors.As(err, &notFound) {
			respondError(w, http.StatusNotFound, err)
			return
		}
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, m.Summary())
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]interface{}{
		"status": false,
		"error":  err.Error(),
	})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("⚠️ failed to write response:", err)
	}
}
