package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophsocial/internal/client/api"
)

var errUsage = errors.New("usage")

// Show prints a public profile and its followers.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return errUsage
	}

	u, err := a.api.GetUser(ctx, args[0])
	if err != nil {
		a.report("Could not load user", err)
		return err
	}

	a.printUser(u)
	return nil
}

func (a *App) Follow(ctx context.Context, args []string) error {
	return a.relationship(ctx, "follow", args, a.api.Follow)
}

func (a *App) Unfollow(ctx context.Context, args []string) error {
	return a.relationship(ctx, "unfollow", args, a.api.Unfollow)
}

func (a *App) relationship(ctx context.Context, verb string, args []string,
	call func(ctx context.Context, token, id string) (*api.User, error)) error {

	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", verb)
		return errUsage
	}
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return errNotLoggedIn
	}

	u, err := call(ctx, a.token, args[0])
	if err != nil {
		a.report("Could not "+verb, err)
		return err
	}

	fmt.Fprintf(a.out, "%s now has %d follower(s)\n", u.Name, len(u.Followers))
	return nil
}

func (a *App) printUser(u *api.User) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	fmt.Fprintf(w, "Name:\t%s\n", u.Name)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	fmt.Fprintf(w, "Avatar:\t%s\n", u.Avatar)
	fmt.Fprintf(w, "Joined:\t%s\n", u.Date.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Followers:\t%d\n", len(u.Followers))
	for _, f := range u.Followers {
		fmt.Fprintf(w, "\t%s\t%s\n", f.User, f.Date.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

// report prints a one-line explanation of err.
func (a *App) report(prefix string, err error) {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintf(a.out, "%s: server unavailable\n", prefix)
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintf(a.out, "%s: session expired, please login again\n", prefix)
	default:
		fmt.Fprintf(a.out, "%s: %v\n", prefix, err)
	}
}
