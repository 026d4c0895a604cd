package services

import (
	"context"
	"net/url"
	"time"

	"github.com/clinivault/clinivault/internal/client/api"
	"github.com/clinivault/clinivault/internal/client/models"
)

// AppointmentService is the typed client for the scheduling endpoints.
type AppointmentService interface {
	List(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	Create(ctx context.Context, a models.Appointment) (*models.Appointment, error)
	Cancel(ctx context.Context, id string) error
}

type appointmentService struct {
	client api.Client
}

func NewAppointmentService(client api.Client) AppointmentService {
	return &appointmentService{client: client}
}

func (s *appointmentService) List(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.Format(time.RFC3339))
	}

	path := "/api/v1/appointments"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var appointments []models.Appointment
	if err := s.client.Get(ctx, path, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *appointmentService) Create(ctx context.Context, a models.Appointment) (*models.Appointment, error) {
	var created models.Appointment
	if err := s.client.Post(ctx, "/api/v1/appointments", a, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Cancel marks the appointment cancelled on the backend. The slot itself is
// kept for history; deletion is not offered to clients.
func (s *appointmentService) Cancel(ctx context.Context, id string) error {
	return s.client.Post(ctx, "/api/v1/appointments/"+id+"/cancel", struct{}{}, nil)
}
