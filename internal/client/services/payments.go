package services

import (
	"context"
	"net/url"

	"github.com/clinivault/clinivault/internal/client/api"
	"github.com/clinivault/clinivault/internal/client/models"
)

// PaymentService is the typed client for the payment endpoints.
type PaymentService interface {
	List(ctx context.Context, patientID string) ([]models.Payment, error)
	Create(ctx context.Context, p models.Payment) (*models.Payment, error)
}

type paymentService struct {
	client api.Client
}

func NewPaymentService(client api.Client) PaymentService {
	return &paymentService{client: client}
}

func (s *paymentService) List(ctx context.Context, patientID string) ([]models.Payment, error) {
	path := "/api/v1/payments"
	if patientID != "" {
		path += "?" + url.Values{"patientId": {patientID}}.Encode()
	}

	var payments []models.Payment
	if err := s.client.Get(ctx, path, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *paymentService) Create(ctx context.Context, p models.Payment) (*models.Payment, error) {
	var created models.Payment
	if err := s.client.Post(ctx, "/api/v1/payments", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
