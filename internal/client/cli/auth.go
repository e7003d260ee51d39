package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mgiraud/autotrader/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. Validation and request
// failures come back through the session store and are shown inline.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	res := a.store.Login(ctx, session.Credentials{Username: username, Password: password})
	if !res.Success {
		printlnFn("Login failed:", res.Error)
		return nil
	}
	printlnFn("Logged in as", a.store.Snapshot().User.Username)
	return nil
}

// Register prompts for account details and creates a new account. On success
// the user still has to log in; registration does not start a session.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	slUser, err := getSimpleText(a.reader, "Splinterlands username (optional)", os.Stdout)
	if err != nil {
		return err
	}

	res := a.store.Register(ctx, session.Registration{
		Username:              username,
		Email:                 email,
		Password:              password,
		ConfirmPassword:       confirm,
		SplinterlandsUsername: slUser,
	})
	if !res.Success {
		printlnFn("Registration failed:", res.Error)
		return nil
	}
	printlnFn("Account created, you can log in now.")
	return nil
}

// Logout ends the session. It always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current user record.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.store.Snapshot()
	if !snap.IsAuthenticated {
		printlnFn("Not logged in.")
		return nil
	}
	u := snap.User
	printlnFn(fmt.Sprintf("%s <%s>", u.Username, u.Email))
	printlnFn(fmt.Sprintf("admin: %v, trading enabled: %v, posting key linked: %v",
		snap.IsAdmin(), snap.CanTrade(), snap.HasPostingKey()))
	return nil
}

// Refresh re-fetches the user record from the server. If the token has been
// rejected in the meantime the session ends silently, matching normal
// session expiry.
func (a *App) Refresh(ctx context.Context) error {
	a.store.RefreshUser(ctx)
	snap := a.store.Snapshot()
	if !snap.IsAuthenticated {
		printlnFn("Session expired, please log in again.")
		return nil
	}
	printlnFn("User refreshed:", snap.User.Username)
	return nil
}
