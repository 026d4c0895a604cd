package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/clinivault/clinivault/internal/client/api"
	"github.com/clinivault/clinivault/internal/client/config"
	"github.com/clinivault/clinivault/internal/client/credentials"
	"github.com/clinivault/clinivault/internal/client/services"
	"github.com/clinivault/clinivault/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config             *config.Config
	authService        services.AuthService
	patientService     services.PatientService
	appointmentService services.AppointmentService
	paymentService     services.PaymentService
	log                logging.Logger
	reader             *bufio.Reader
	userEmail          string
}

// NewApp builds the composition root: it opens the durable credential tier,
// initializes the shared API client over it, and wires the feature services.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := credentials.OpenDatabase(ctx, cfg.CredentialsDSN)
	if err != nil {
		return nil, err
	}

	store := credentials.NewDurableStore(credentials.NewSQLiteTier(db), credentials.NewMemoryTier())
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	client := api.Init(cfg.ServerBaseURL, store, api.WithLogger(log))

	return &App{
		config:             cfg,
		authService:        services.NewAuthService(client, log),
		patientService:     services.NewPatientService(client),
		appointmentService: services.NewAppointmentService(client),
		paymentService:     services.NewPaymentService(client),
		log:                log,
		reader:             bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the background token refresh watcher and the REPL. It returns
// when the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.authService.StartRefreshWatcher(ctx, a.config.RefreshCheckInterval, a.config.RefreshAhead)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// isLoggedIn asks the store, never a cached flag: a session token alone does
// not count, the encryption key must be present too.
func (a *App) isLoggedIn() bool {
	ok, err := a.authService.IsAuthenticated(context.Background())
	return err == nil && ok
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	if a.userEmail != "" {
		return "(" + a.userEmail + ")"
	}
	return "(authenticated)"
}
