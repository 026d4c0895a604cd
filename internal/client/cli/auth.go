package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/clinivault/clinivault/internal/client/apierror"
	"github.com/clinivault/clinivault/internal/common"
)

// getSimpleText, getPassword, and getConfirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getConfirm    = GetConfirm
)

// renderError prints an error the way the UI contract demands: a normalized
// API failure always carries a single localized, renderable message; anything
// else is shown as-is.
func renderError(err error) {
	var se *apierror.StructuredError
	if errors.As(err, &se) {
		printlnFn(se.Message)
		return
	}
	printlnFn("Error:", err.Error())
}

// Register prompts for an email and passphrase and creates a new account.
// The passphrase later becomes the source of the encryption key, so the user
// is warned up front that losing it makes clinical content unrecoverable.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	printlnFn("Your passphrase protects clinical content. It cannot be recovered or reset — if you lose it, encrypted data is lost.")

	passphrase, err := getPassword("Enter passphrase", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	if err := a.authService.Register(ctx, email, passphrase); err != nil {
		renderError(err)
		return err
	}

	printlnFn("Account created. You can now log in.")
	return nil
}

// Login prompts for credentials and a "remember me" choice, then establishes
// the session. On success the credential store holds both the token and the
// locally derived encryption key.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	passphrase, err := getPassword("Enter passphrase", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	remember, err := getConfirm(a.reader, "Remember this device?", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, email, passphrase, remember); err != nil {
		renderError(err)
		return err
	}

	a.userEmail = email
	printlnFn("Welcome,", email)
	return nil
}

// Logout destroys both stored secrets.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		renderError(err)
		return err
	}
	a.userEmail = ""
	printlnFn("Logged out.")
	return nil
}

// Status reports whether the session is fully usable.
func (a *App) Status(ctx context.Context) error {
	ok, err := a.authService.IsAuthenticated(ctx)
	if err != nil {
		renderError(err)
		return err
	}
	if ok {
		printlnFn(fmt.Sprintf("Authenticated%s", statusSuffix(a.userEmail)))
	} else {
		printlnFn("Not authenticated")
	}
	return nil
}

func statusSuffix(email string) string {
	if email == "" {
		return ""
	}
	return " as " + email
}
