package queue

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// TrainTopic carries training run IDs
const TrainTopic = "segmentation_train"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue runs each published job on its own goroutine with retry
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	maxRetries int
	backoff    time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(maxRetries int, backoff time.Duration) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: q.maxRetries,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			log.Printf("Job processed successfully: %+v\n", job.Payload)
			return
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries+1, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.RetryCount, job.Payload)
			return
		}

		// linear backoff before retry
		time.Sleep(time.Duration(job.RetryCount) * q.backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// JobRunner executes one queued training run
type JobRunner interface {
	RunTrainingJob(ctx context.Context, runID string) error
}

// StartTrainingSubscriber wires TrainTopic to runner
func StartTrainingSubscriber(q Queue, runner JobRunner) error {
	return q.Subscribe(TrainTopic, func(payload any) error {
		runID, ok := payload.(string)
		if !ok {
			log.Printf("⚠️ Invalid payload type %T, expected run ID string\n", payload)
			return nil // no retry
		}

		log.Println("📩 Processing queued training run:", runID)
		if err := runner.RunTrainingJob(context.Background(), runID); err != nil {
			log.Println("⚠️ Training run", runID, "failed:", err)
			return err // triggers retry in queue
		}
		return nil
	})
}
