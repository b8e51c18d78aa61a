// internal/model/cluster_model.go
package model

import "time"

// ClusterModel is the trained segmentation artifact. Centroids live in
// scaled space; Means and Scales undo the raw feature units.
type ClusterModel struct {
    Version      string      `db:"version" json:"version"`
    K            int         `db:"k" json:"k"`
    Features     []string    `db:"features" json:"features"`
    Means        []float64   `db:"means" json:"means"`
    Scales       []float64   `db:"scales" json:"scales"`
    Centroids    [][]float64 `db:"centroids" json:"centroids"`
    ClusterSizes []int       `db:"cluster_sizes" json:"cluster_sizes"`
    Inertia      float64     `db:"inertia" json:"inertia"`
    Samples      int         `db:"samples" json:"samples"`
    TrainedAt    time.Time   `db:"trained_at" json:"trained_at"`
}

// ModelSummary is what /model returns; centroids stay internal.
type ModelSummary struct {
    Version      string    `json:"version"`
    K            int       `json:"k"`
    Features     []string  `json:"features"`
    ClusterSizes []int     `json:"cluster_sizes"`
    Inertia      float64   `json:"inertia"`
    Samples      int       `json:"samples"`
    TrainedAt    time.Time `json:"trained_at"`
}

func (m *ClusterModel) Summary() ModelSummary {
    return ModelSummary{
        Version:      m.Version,
        K:            m.K,
        Features:     m.Features,
        ClusterSizes: m.ClusterSizes,
        Inertia:      m.Inertia,
        Samples:      m.Samples,
        TrainedAt:    m.TrainedAt,
    }
}
