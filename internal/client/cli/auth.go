package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/promptdesk/internal/client/services"
	"github.com/dmitrijs2005/promptdesk/internal/client/session"
	"github.com/dmitrijs2005/promptdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login asks for email and password. On success the session is replaced,
// a fresh conversation starts and the app moves to chat. A failed attempt
// stays in the login view.
func (a *App) Login(ctx context.Context) error {
	if _, ok := a.view.(AuthChoice); ok {
		if err := a.fire(EventChooseLogin); err != nil {
			return err
		}
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			printlnFn("Email and password are required")
			return err
		}
		return a.report(err, "Invalid credentials")
	}

	a.signedIn(s)
	return a.fire(EventAuthenticated)
}

// Register asks for username, email and password and signs the new
// account in.
func (a *App) Register(ctx context.Context) error {
	if _, ok := a.view.(AuthChoice); ok {
		if err := a.fire(EventChooseRegister); err != nil {
			return err
		}
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Register(ctx, username, email, password)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			printlnFn("All fields are required")
			return err
		}
		return a.report(err, "Unauthorized")
	}

	printlnFn("Account created.")
	a.signedIn(s)
	return a.fire(EventAuthenticated)
}

// SwitchTo moves between the login and register forms and runs the chosen one.
func (a *App) SwitchTo(ctx context.Context, register bool) error {
	if register {
		if err := a.fire(EventChooseRegister); err != nil {
			return err
		}
		return a.Register(ctx)
	}
	if err := a.fire(EventChooseLogin); err != nil {
		return err
	}
	return a.Login(ctx)
}

// Guest continues without an account. Chat works; saved prompts do not.
func (a *App) Guest(ctx context.Context) error {
	s, err := a.auth.ContinueAsGuest(ctx)
	if err != nil {
		return a.report(err, "")
	}
	if err := a.fire(EventChooseGuest); err != nil {
		return err
	}
	a.signedIn(s)
	printlnFn("Continuing as guest.")
	return nil
}

// Logout forgets the stored session and returns to the auth choice.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.report(err, "")
	}
	if err := a.fire(EventLogout); err != nil {
		return err
	}
	a.signedIn(session.Session{})
	printlnFn("Logged out.")
	return nil
}

func (a *App) signedIn(s session.Session) {
	a.session = s
	a.conv = services.NewConversation(a.api)
}
