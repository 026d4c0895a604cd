package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinivault/clinivault/internal/client/models"
)

func TestAppointmentList_BuildsTimeWindowQuery(t *testing.T) {
	from := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 18, 0, 0, 0, time.UTC)

	var gotPath string
	f := &fakeAPI{
		GetFn: func(path string, out any) error {
			gotPath = path
			*out.(*[]models.Appointment) = []models.Appointment{{ID: "a1"}}
			return nil
		},
	}
	svc := NewAppointmentService(f)

	appointments, err := svc.List(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, appointments, 1)

	assert.Contains(t, gotPath, "/api/v1/appointments?")
	assert.Contains(t, gotPath, "from=2025-06-01T09%3A00%3A00Z")
	assert.Contains(t, gotPath, "to=2025-06-30T18%3A00%3A00Z")
}

func TestAppointmentList_NoWindow(t *testing.T) {
	var gotPath string
	f := &fakeAPI{
		GetFn: func(path string, out any) error {
			gotPath = path
			return nil
		},
	}
	svc := NewAppointmentService(f)

	_, err := svc.List(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/appointments", gotPath)
}

func TestAppointmentCreate(t *testing.T) {
	f := &fakeAPI{
		PostFn: func(path string, body, out any) error {
			require.Equal(t, "/api/v1/appointments", path)
			created := body.(models.Appointment)
			created.ID = "a1"
			created.Status = models.AppointmentScheduled
			*out.(*models.Appointment) = created
			return nil
		},
	}
	svc := NewAppointmentService(f)

	created, err := svc.Create(context.Background(), models.Appointment{PatientID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)
	assert.Equal(t, models.AppointmentScheduled, created.Status)
}

func TestAppointmentCancel(t *testing.T) {
	var gotPath string
	f := &fakeAPI{
		PostFn: func(path string, body, out any) error {
			gotPath = path
			return nil
		},
	}
	svc := NewAppointmentService(f)

	require.NoError(t, svc.Cancel(context.Background(), "a1"))
	assert.Equal(t, "/api/v1/appointments/a1/cancel", gotPath)
}
