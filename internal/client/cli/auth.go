package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var errNotLoggedIn = errors.New("not logged in")

// Register prompts for a name, an email and a confirmed password and creates
// the account. It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := promptLine(a.reader, a.out, "Name")
	if err != nil {
		a.report("Registration cancelled", err)
		return err
	}

	email, err := promptEmail(a.reader, a.out)
	if err != nil {
		a.report("Registration cancelled", err)
		return err
	}

	password, err := promptNewPassword(a.reader, a.out)
	if err != nil {
		a.report("Registration cancelled", err)
		return err
	}
	defer wipe(password)

	u, err := a.api.Register(ctx, name, email, string(password))
	if err != nil {
		a.report("Registration failed", err)
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %s)\n", u.Email, u.ID)
	return nil
}

// Login prompts for credentials and keeps the issued token for the session.
// The prompt status shows the account name once the token is accepted.
func (a *App) Login(ctx context.Context) error {
	email, err := promptEmail(a.reader, a.out)
	if err != nil {
		a.report("Login cancelled", err)
		return err
	}

	password, err := promptPassword(a.reader, a.out, "Password")
	if err != nil {
		a.report("Login cancelled", err)
		return err
	}
	defer wipe(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		a.report("Login unsuccessful", err)
		return err
	}

	a.token = token
	a.userName = email
	if me, err := a.api.Current(ctx, token); err == nil {
		a.userName = me.Name
	}

	log.Printf("Login successful")
	return nil
}

// Logout drops the in-memory token.
func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.userName = ""
	return nil
}

// WhoAmI prints the account behind the current token.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return errNotLoggedIn
	}

	me, err := a.api.Current(ctx, a.token)
	if err != nil {
		a.report("Could not load current user", err)
		return err
	}

	fmt.Fprintf(a.out, "%s <%s> id=%s\n", me.Name, me.Email, me.ID)
	return nil
}
