package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/streadway/amqp"
)

const retryHeader = "x-retry-count"

// Job is one delivery handed to a worker. Done must be called exactly once.
type Job struct {
	Payload any
	Attempt int
	Done    func(err error)
}

// AMQPQueue publishes and consumes JSON payloads on durable RabbitMQ
// queues named after the topic.
type AMQPQueue struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	mu         sync.Mutex
	MaxRetries int
}

func DialAMQP(url string, maxRetries int) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch, MaxRetries: maxRetries}, nil
}

func (q *AMQPQueue) declare(topic string) error {
	_, err := q.ch.QueueDeclare(
		topic, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", topic, err)
	}
	return nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	return q.publish(topic, payload, 0)
}

func (q *AMQPQueue) publish(topic string, payload any, retry int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.declare(topic); err != nil {
		return err
	}
	return q.ch.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{retryHeader: int32(retry)},
			Body:         body,
		},
	)
}

// Consume streams deliveries of topic as Jobs. A failed job is republished
// with its retry count bumped until MaxRetries, then dead-lettered.
func (q *AMQPQueue) Consume(topic string) (<-chan Job, error) {
	q.mu.Lock()
	if err := q.declare(topic); err != nil {
		q.mu.Unlock()
		return nil, err
	}
	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	q.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to register consumer: %w", err)
	}

	jobs := make(chan Job)
	go func() {
		defer close(jobs)
		for d := range msgs {
			var payload any
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Println("⚠️ Invalid job:", err)
				d.Ack(false)
				continue
			}

			d := d
			retry := retryCount(d.Headers)
			jobs <- Job{
				Payload: payload,
				Attempt: retry + 1,
				Done: func(err error) {
					if err == nil {
						d.Ack(false)
						return
					}
					if retry >= q.MaxRetries {
						log.Printf("❌ Job permanently failed after %d attempts: %v\n", retry+1, err)
						d.Nack(false, false)
						return
					}
					if perr := q.publish(topic, payload, retry+1); perr != nil {
						log.Println("⚠️ Failed to requeue job:", perr)
						d.Nack(false, true)
						return
					}
					d.Ack(false)
				},
			}
		}
	}()
	return jobs, nil
}

// Subscribe runs handler for every delivery of topic in the background.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	jobs, err := q.Consume(topic)
	if err != nil {
		return err
	}
	go func() {
		for job := range jobs {
			job.Done(handler(job.Payload))
		}
	}()
	return nil
}

func (q *AMQPQueue) Close() error {
	q.ch.Close()
	return q.conn.Close()
}

func retryCount(h amqp.Table) int {
	switch v := h[retryHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

var (
	_ Queue = (*InMemoryQueue)(nil)
	_ Queue = (*AMQPQueue)(nil)
)
