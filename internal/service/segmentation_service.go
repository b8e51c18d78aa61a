// internal/service/segmentation_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/unclebandit/customer-segmentation/internal/metrics"
	"github.com/unclebandit/customer-segmentation/internal/model"
	"github.com/unclebandit/customer-segmentation/internal/queue"
	"github.com/unclebandit/customer-segmentation/internal/repository"
)

// Trainer is satisfied by *pipeline.TrainPipeline
type Trainer interface {
	RunPipeline(ctx context.Context) (*model.ClusterModel, error)
}

// Predictor is satisfied by *pipeline.PredictionPipeline
type Predictor interface {
	RunPipeline(ctx context.Context, input []float64) ([]int, error)
}

var ErrAsyncDisabled = errors.New("async training is not configured")

type SegmentationService struct {
	Trainer   Trainer
	Predictor Predictor
	Models    repository.ModelRepositoryInterface
	Runs      repository.TrainingRunRepositoryInterface
	Queue     queue.Queue

	group singleflight.Group
}

// Train runs the training pipeline. Concurrent callers share one run and
// all receive its result.
func (s *SegmentationService) Train(ctx context.Context) (*model.ClusterModel, error) {
	// a caller hanging up must not abort a run other callers wait on
	runCtx := context.WithoutCancel(ctx)

	v, err, shared := s.group.Do("train", func() (any, error) {
		start := time.Now()
		m, err := s.Trainer.RunPipeline(runCtx)
		k := 0
		if m != nil {
			k = m.K
		}
		metrics.ObserveTraining(time.Since(start).Seconds(), k, err)
		return m, err
	})
	if shared {
		log.Println("Training run shared with a concurrent request")
	}
	if err != nil {
		return nil, err
	}
	return v.(*model.ClusterModel), nil
}

// Predict returns the cluster label of a single customer.
func (s *SegmentationService) Predict(ctx context.Context, rec model.CustomerRecord) (int, error) {
	log.Printf("Received data %+v\n", rec)

	labels, err := s.Predictor.RunPipeline(ctx, rec.Vector())
	if err == nil && len(labels) == 0 {
		err = errors.New("prediction pipeline returned no labels")
	}
	if err != nil {
		metrics.ObservePrediction(0, err)
		return 0, err
	}

	metrics.ObservePrediction(labels[0], nil)
	return labels[0], nil
}

func (s *SegmentationService) LatestModel(ctx context.Context) (*model.ClusterModel, error) {
	return s.Models.Latest(ctx)
}

// EnqueueTraining records a pending run and hands it to the queue.
func (s *SegmentationService) EnqueueTraining(ctx context.Context) (*model.TrainingRun, error) {
	if s.Runs == nil || s.Queue == nil {
		return nil, ErrAsyncDisabled
	}

	run := &model.TrainingRun{ID: uuid.New().String(), Status: model.RunPending}
	if err := s.Runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("create training run: %w", err)
	}

	if err := s.Queue.Publish(queue.TrainTopic, run.ID); err != nil {
		log.Println("⚠️ failed to enqueue training run", run.ID, ":", err)
		_ = s.Runs.UpdateStatus(ctx, run.ID, model.RunFailed, "", err.Error())
		return nil, fmt.Errorf("enqueue training run: %w", err)
	}

	log.Println("📤 Training run queued:", run.ID)
	return run, nil
}

func (s *SegmentationService) GetTrainingRun(ctx context.Context, id string) (*model.TrainingRun, error) {
	if s.Runs == nil {
		return nil, ErrAsyncDisabled
	}
	return s.Runs.GetByID(ctx, id)
}

// RunTrainingJob executes a queued run. A pipeline failure is recorded on
// the run and is not returned; only bookkeeping errors are, so the queue
// retries those alone.
func (s *SegmentationService) RunTrainingJob(ctx context.Context, runID string) error {
	run, err := s.Runs.GetByID(ctx, runID)
	if err != nil {
		return err
	}
	if run.Status == model.RunSucceeded {
		log.Println("Training run already succeeded, skipping:", runID)
		return nil
	}

	if err := s.Runs.UpdateStatus(ctx, runID, model.RunRunning, "", ""); err != nil {
		return err
	}

	m, err := s.Train(ctx)
	if err != nil {
		log.Println("❌ Training run", runID, "failed:", err)
		return s.Runs.UpdateStatus(ctx, runID, model.RunFailed, "", err.Error())
	}

	log.Println("✅ Training run", runID, "produced model", m.Version)
	return s.Runs.UpdateStatus(ctx, runID, model.RunSucceeded, m.Version, "")
}

var _ queue.JobRunner = (*SegmentationService)(nil)
