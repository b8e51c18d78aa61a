package service

import (
	"context"
	"log"

	"github.com/unclebandit/customer-segmentation/internal/queue"
)

// Worker processes training jobs
type Worker struct {
	Runner queue.JobRunner
	Jobs   <-chan queue.Job
}

// Constructor
func NewWorker(runner queue.JobRunner, jobs <-chan queue.Job) *Worker {
	return &Worker{
		Runner: runner,
		Jobs:   jobs,
	}
}

// Start blocks until the job channel closes
func (w *Worker) Start() {
	for job := range w.Jobs {
		runID, ok := job.Payload.(string)
		if !ok {
			log.Printf("⚠️ Invalid job payload %T, dropping\n", job.Payload)
			job.Done(nil)
			continue
		}

		log.Printf("📩 Processing training run %s (attempt %d)\n", runID, job.Attempt)
		err := w.Runner.RunTrainingJob(context.Background(), runID)
		if err != nil {
			log.Println("Failed to process training run:", err)
		}
		job.Done(err)
	}
}
