// internal/model/training_run.go
package model

import "time"

const (
    RunPending   = "pending"
    RunRunning   = "running"
    RunSucceeded = "succeeded"
    RunFailed    = "failed"
)

type TrainingRun struct {
    ID           string    `db:"id" json:"id"`
    Status       string    `db:"status" json:"status"` // pending, running, succeeded, failed
    ModelVersion string    `db:"model_version" json:"model_version,omitempty"`
    Error        string    `db:"error,omitempty" json:"error,omitempty"`
    CreatedAt    time.Time `db:"created_at" json:"created_at"`
    UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
