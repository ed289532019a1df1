package domain

import "time"

type Region struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Country   string    `db:"country" json:"country"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Rows below mirror the store tables one to one.

type PredictionRow struct {
	RegionID    int64     `db:"region_id"`
	Model       string    `db:"model"`
	Accuracy    float64   `db:"accuracy"`
	GeneratedAt time.Time `db:"generated_at"`
}

type RiskTrendRow struct {
	RegionID         int64     `db:"region_id"`
	RecordedAt       time.Time `db:"recorded_at"`
	RiskLevel        string    `db:"risk_level"`
	RiskScore        float64   `db:"risk_score"`
	PopulationAtRisk int64     `db:"population_at_risk"`
	Latitude         float64   `db:"latitude"`
	Longitude        float64   `db:"longitude"`
	Confidence       float64   `db:"confidence"`
}

type AlertRow struct {
	IssuedAt       time.Time `db:"issued_at"`
	Severity       string    `db:"severity"`
	FalsePositive  bool      `db:"false_positive"`
	Delivered      bool      `db:"delivered"`
	ResponseMillis int64     `db:"response_ms"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
}
