package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aideasy/internal/client/client"
	"github.com/dmitrijs2005/aideasy/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in, type 'login' first")

// Login prompts for credentials and opens a session. The password is
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.auth.Login(ctx, login, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("login unsuccessful: wrong login or password")
		}
		return err
	}

	a.setUser(p.Login)
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", p.FullName, p.Role)
	return nil
}

// Logout forgets the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Status prints the signed-in user and connectivity.
func (a *App) Status(ctx context.Context) error {
	a.mu.Lock()
	mode, user := a.mode, a.userName
	a.mu.Unlock()

	if mode == "" {
		mode = "unknown"
	}
	fmt.Fprintf(a.out, "server: %s (%s)\n", a.config.ServerURL, mode)
	if user == "" {
		fmt.Fprintln(a.out, "session: none")
		return nil
	}
	p, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "session: %s <%s> %s, organization %s\n", p.FullName, p.Login, p.Role, p.OrganizationID)
	return nil
}
