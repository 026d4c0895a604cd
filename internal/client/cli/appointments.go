package cli

import (
	"context"
	"fmt"
	"time"
)

// Appointments lists appointments for the next 30 days.
func (a *App) Appointments(ctx context.Context) error {
	now := time.Now()
	appointments, err := a.appointmentService.List(ctx, now, now.AddDate(0, 0, 30))
	if err != nil {
		renderError(err)
		return err
	}

	if len(appointments) == 0 {
		printlnFn("No upcoming appointments.")
		return nil
	}

	for _, ap := range appointments {
		printlnFn(fmt.Sprintf("%-10s %s  patient=%s  %s",
			ap.ID, ap.StartsAt.Local().Format("2006-01-02 15:04"), ap.PatientID, ap.Status))
	}
	return nil
}
