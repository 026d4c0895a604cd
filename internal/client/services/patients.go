package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/clinivault/clinivault/internal/client/api"
	"github.com/clinivault/clinivault/internal/client/models"
	"github.com/clinivault/clinivault/internal/cryptox"
)

// PatientService is the typed client for the patient endpoints. Clinical
// notes are encrypted before leaving the machine and decrypted on the way in,
// both with the user-held key from the credential store.
type PatientService interface {
	List(ctx context.Context) ([]models.Patient, error)
	Get(ctx context.Context, id string) (*models.Patient, error)
	Create(ctx context.Context, p models.Patient) (*models.Patient, error)
	Update(ctx context.Context, p models.Patient) (*models.Patient, error)
	Delete(ctx context.Context, id string) error
}

type patientService struct {
	client api.Client
}

func NewPatientService(client api.Client) PatientService {
	return &patientService{client: client}
}

func (s *patientService) List(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := s.client.Get(ctx, "/api/v1/patients", &patients); err != nil {
		return nil, err
	}
	for i := range patients {
		if err := s.openNotes(ctx, &patients[i]); err != nil {
			return nil, err
		}
	}
	return patients, nil
}

func (s *patientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	var p models.Patient
	if err := s.client.Get(ctx, "/api/v1/patients/"+id, &p); err != nil {
		return nil, err
	}
	if err := s.openNotes(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *patientService) Create(ctx context.Context, p models.Patient) (*models.Patient, error) {
	if err := s.sealNotes(ctx, &p); err != nil {
		return nil, err
	}
	var created models.Patient
	if err := s.client.Post(ctx, "/api/v1/patients", p, &created); err != nil {
		return nil, err
	}
	if err := s.openNotes(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *patientService) Update(ctx context.Context, p models.Patient) (*models.Patient, error) {
	if err := s.sealNotes(ctx, &p); err != nil {
		return nil, err
	}
	var updated models.Patient
	if err := s.client.Put(ctx, "/api/v1/patients/"+p.ID, p, &updated); err != nil {
		return nil, err
	}
	if err := s.openNotes(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *patientService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/api/v1/patients/"+id)
}

// sealNotes encrypts p.Notes into the wire fields. A patient without notes
// travels with both fields empty.
func (s *patientService) sealNotes(ctx context.Context, p *models.Patient) error {
	if p.Notes == "" {
		p.EncryptedNotes, p.NotesNonce = "", ""
		return nil
	}

	key, err := s.userKey(ctx)
	if err != nil {
		return err
	}

	ciphertext, nonce, err := cryptox.EncryptRecord(p.Notes, key)
	if err != nil {
		return fmt.Errorf("encrypt notes: %w", err)
	}

	p.EncryptedNotes = base64.StdEncoding.EncodeToString(ciphertext)
	p.NotesNonce = base64.StdEncoding.EncodeToString(nonce)
	p.Notes = ""
	return nil
}

// openNotes decrypts the wire fields into p.Notes.
func (s *patientService) openNotes(ctx context.Context, p *models.Patient) error {
	if p.EncryptedNotes == "" {
		return nil
	}

	key, err := s.userKey(ctx)
	if err != nil {
		return err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(p.EncryptedNotes)
	if err != nil {
		return fmt.Errorf("decode notes: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(p.NotesNonce)
	if err != nil {
		return fmt.Errorf("decode notes nonce: %w", err)
	}

	var notes string
	if err := cryptox.DecryptRecord(ciphertext, nonce, key, &notes); err != nil {
		return fmt.Errorf("decrypt notes: %w", err)
	}
	p.Notes = notes
	return nil
}

func (s *patientService) userKey(ctx context.Context) ([]byte, error) {
	stored, err := s.client.UserKey(ctx)
	if err != nil {
		return nil, err
	}
	if stored == "" {
		return nil, fmt.Errorf("no encryption key in store")
	}
	return cryptox.DecodeKey(stored)
}
