package domain

import "context"

// Overview is derived on every call by scanning current state. Nothing in
// it is cached or incrementally maintained.
type Overview struct {
	TotalSnapshots    int64   `json:"total_snapshots"`
	ActiveSnapshots   int64   `json:"active_snapshots"`
	MeanSnapshotValue float64 `json:"mean_snapshot_value"`
	MeanLineCount     float64 `json:"mean_line_count"`
	Abandoned         int64   `json:"abandoned"`
	Recovered         int64   `json:"recovered"`
	RecoveryRate      float64 `json:"recovery_rate"`
}

// Service exposes derived engagement statistics.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}
