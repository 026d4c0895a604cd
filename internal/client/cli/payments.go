package cli

import (
	"context"
	"fmt"
	"os"
)

// Payments lists payments, optionally filtered by patient.
func (a *App) Payments(ctx context.Context) error {
	patientID, err := getSimpleText(a.reader, "Patient ID (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	payments, err := a.paymentService.List(ctx, patientID)
	if err != nil {
		renderError(err)
		return err
	}

	if len(payments) == 0 {
		printlnFn("No payments found.")
		return nil
	}

	for _, p := range payments {
		printlnFn(fmt.Sprintf("%-10s patient=%-10s %8.2f %s  %s",
			p.ID, p.PatientID, float64(p.AmountCents)/100, p.Currency, p.Status))
	}
	return nil
}
