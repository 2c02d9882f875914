package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ssolovyeva/tripkeeper/internal/client/api"
	"github.com/ssolovyeva/tripkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create an account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.session.Register(rctx, email, string(password), firstName, lastName); err != nil {
		log.Printf("Registration unsuccessful: %s", userMessage(err))
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates through the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.session.Login(rctx, email, string(password), true); err != nil {
		log.Printf("Login unsuccessful: %s", userMessage(err))
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout tears the session down. Local state is cleared even when the
// sign-out call fails, so this never returns an error.
func (a *App) Logout(ctx context.Context) error {
	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	a.session.Logout(rctx)
	fmt.Println("Logged out")
	return nil
}

// WhoAmI prints the current user projection.
func (a *App) WhoAmI(ctx context.Context) error {
	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.session.CurrentUser(rctx)
	if err != nil {
		log.Printf("Not signed in: %s", userMessage(err))
		return err
	}

	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	return nil
}

// userMessage maps client sentinel errors to the messages shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "invalid credentials or expired session, please sign in"
	case errors.Is(err, api.ErrValidation):
		return err.Error()
	case errors.Is(err, api.ErrRateLimited):
		return "too many attempts, please wait a moment and try again"
	case errors.Is(err, api.ErrUnavailable):
		return "service is temporarily unavailable, please try again later"
	default:
		return err.Error()
	}
}
