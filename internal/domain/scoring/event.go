package scoring

import "time"

const EventScoreRecalculated = "visit.score_recalculated"

// RecalculatedEvent is emitted after a recalculated score has been persisted.
type RecalculatedEvent struct {
	Type           string    `json:"type"`
	RunID          string    `json:"run_id"`
	VisitID        string    `json:"visit_id"`
	UserID         string    `json:"user_id"`
	PreviousPoints float64   `json:"previous_points"`
	TotalPoints    float64   `json:"total_points"`
	ConfigVersion  int       `json:"config_version"`
	RecalculatedAt time.Time `json:"recalculated_at"`
}
