package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinivault/clinivault/internal/client/models"
)

func TestPaymentList_FiltersByPatient(t *testing.T) {
	var gotPath string
	f := &fakeAPI{
		GetFn: func(path string, out any) error {
			gotPath = path
			*out.(*[]models.Payment) = []models.Payment{{ID: "pay1", AmountCents: 4500}}
			return nil
		},
	}
	svc := NewPaymentService(f)

	payments, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(4500), payments[0].AmountCents)
	assert.Equal(t, "/api/v1/payments?patientId=p1", gotPath)
}

func TestPaymentList_AllPatients(t *testing.T) {
	var gotPath string
	f := &fakeAPI{
		GetFn: func(path string, out any) error {
			gotPath = path
			return nil
		},
	}
	svc := NewPaymentService(f)

	_, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/payments", gotPath)
}

func TestPaymentCreate(t *testing.T) {
	f := &fakeAPI{
		PostFn: func(path string, body, out any) error {
			require.Equal(t, "/api/v1/payments", path)
			created := body.(models.Payment)
			created.ID = "pay1"
			created.Status = "captured"
			*out.(*models.Payment) = created
			return nil
		},
	}
	svc := NewPaymentService(f)

	created, err := svc.Create(context.Background(), models.Payment{PatientID: "p1", AmountCents: 4500, Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, "pay1", created.ID)
	assert.Equal(t, "captured", created.Status)
}
