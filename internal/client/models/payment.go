package models

import "time"

// Payment amounts are integer cents to avoid floating-point drift.
type Payment struct {
	ID          string    `json:"id,omitempty"`
	PatientID   string    `json:"patientId"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	Method      string    `json:"method,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
