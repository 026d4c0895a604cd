package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/clinivault/clinivault/internal/client/models"
)

// Patients lists all patients with their locally decrypted notes.
func (a *App) Patients(ctx context.Context) error {
	patients, err := a.patientService.List(ctx)
	if err != nil {
		renderError(err)
		return err
	}

	if len(patients) == 0 {
		printlnFn("No patients yet.")
		return nil
	}

	for _, p := range patients {
		line := fmt.Sprintf("%-10s %-30s %s", p.ID, p.FullName(), p.Email)
		printlnFn(line)
		if p.Notes != "" {
			printlnFn("           notes:", p.Notes)
		}
	}
	return nil
}

// AddPatient interactively creates a patient. Notes entered here are
// encrypted with the user key before leaving the machine.
func (a *App) AddPatient(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email (optional)", os.Stdout)
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "Clinical notes (optional, stored encrypted)", os.Stdout)
	if err != nil {
		return err
	}

	created, err := a.patientService.Create(ctx, models.Patient{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Notes:     notes,
	})
	if err != nil {
		renderError(err)
		return err
	}

	printlnFn("Created patient", created.ID)
	return nil
}
