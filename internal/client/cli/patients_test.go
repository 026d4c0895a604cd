package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinivault/clinivault/internal/client/models"
)

// fakePatients implements services.PatientService for App command tests.
type fakePatients struct {
	listRet []models.Patient
	listErr error

	created   models.Patient
	createErr error
}

func (f *fakePatients) List(context.Context) ([]models.Patient, error) {
	return f.listRet, f.listErr
}

func (f *fakePatients) Get(context.Context, string) (*models.Patient, error) { return nil, nil }

func (f *fakePatients) Create(_ context.Context, p models.Patient) (*models.Patient, error) {
	f.created = p
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := p
	created.ID = "p1"
	return &created, nil
}

func (f *fakePatients) Update(_ context.Context, p models.Patient) (*models.Patient, error) {
	return &p, nil
}

func (f *fakePatients) Delete(context.Context, string) error { return nil }

func TestPatients_ListsWithNotes(t *testing.T) {
	out := captureOutput(t)

	a := &App{patientService: &fakePatients{listRet: []models.Patient{
		{ID: "p1", FirstName: "Ana", LastName: "García", Notes: "under treatment"},
		{ID: "p2", FirstName: "Luis"},
	}}}

	require.NoError(t, a.Patients(context.Background()))

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "Ana García")
	assert.Contains(t, joined, "under treatment")
	assert.Contains(t, joined, "Luis")
}

func TestPatients_Empty(t *testing.T) {
	out := captureOutput(t)
	a := &App{patientService: &fakePatients{}}

	require.NoError(t, a.Patients(context.Background()))
	assert.Contains(t, strings.Join(*out, ""), "No patients yet.")
}

func TestAddPatient_PromptsAndCreates(t *testing.T) {
	captureOutput(t)

	answers := []string{"Ana", "García", "ana@example.org"}
	origST := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}
	t.Cleanup(func() { getSimpleText = origST })

	f := &fakePatients{}
	a := &App{
		patientService: f,
		reader:         bufio.NewReader(strings.NewReader("note line\n\n")),
	}

	require.NoError(t, a.AddPatient(context.Background()))

	assert.Equal(t, "Ana", f.created.FirstName)
	assert.Equal(t, "García", f.created.LastName)
	assert.Equal(t, "ana@example.org", f.created.Email)
	assert.Equal(t, "note line", f.created.Notes)
}
