package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophsocial/internal/client/api"
	"github.com/dmitrijs2005/gophsocial/internal/client/config"
)

type fakeAPI struct {
	regName, regEmail, regPass string
	regUser                    *api.User
	regErr                     error

	loginEmail, loginPass string
	loginToken            string
	loginErr              error

	current    *api.CurrentUser
	currentErr error

	user    *api.User
	userErr error

	relToken, relID string
	relCalls        []string
	relUser         *api.User
	relErr          error

	pingErr   error
	pingCalls int
}

func (f *fakeAPI) Register(_ context.Context, name, email, password string) (*api.User, error) {
	f.regName, f.regEmail, f.regPass = name, email, password
	return f.regUser, f.regErr
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (string, error) {
	f.loginEmail, f.loginPass = email, password
	return f.loginToken, f.loginErr
}

func (f *fakeAPI) Current(_ context.Context, token string) (*api.CurrentUser, error) {
	return f.current, f.currentErr
}

func (f *fakeAPI) GetUser(_ context.Context, id string) (*api.User, error) {
	return f.user, f.userErr
}

func (f *fakeAPI) Follow(_ context.Context, token, id string) (*api.User, error) {
	f.relCalls = append(f.relCalls, "follow")
	f.relToken, f.relID = token, id
	return f.relUser, f.relErr
}

func (f *fakeAPI) Unfollow(_ context.Context, token, id string) (*api.User, error) {
	f.relCalls = append(f.relCalls, "unfollow")
	f.relToken, f.relID = token, id
	return f.relUser, f.relErr
}

func (f *fakeAPI) Ping(context.Context) error {
	f.pingCalls++
	return f.pingErr
}

func newTestApp(f *fakeAPI) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		config: &config.Config{},
		api:    f,
		reader: bufio.NewReader(strings.NewReader("")),
		out:    &out,
	}, &out
}

// typeLines feeds lines to a's prompts as if they were piped in.
func typeLines(t *testing.T, a *App, lines ...string) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	a.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}
