package model

import "time"

// PredictionResult is the outcome of one prediction run.
type PredictionResult struct {
	TargetDate    time.Time   `json:"target_date"`
	NearestDate   time.Time   `json:"nearest_date"`
	Value         float64     `json:"predicted_total"`
	Lower         float64     `json:"lower_bound"`
	Upper         float64     `json:"upper_bound"`
	Model         string      `json:"model"`
	IntervalWidth float64     `json:"interval_width"`
	Points        int         `json:"points"`
	Granularity   Granularity `json:"-"`
}
