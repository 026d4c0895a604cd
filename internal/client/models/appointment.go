package models

import "time"

// Appointment statuses as reported by the backend.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID        string    `json:"id,omitempty"`
	PatientID string    `json:"patientId"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    string    `json:"status,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}
