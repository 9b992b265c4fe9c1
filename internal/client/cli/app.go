// Package cli implements the aycode command-line client on top of cobra.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/aycode/internal/client/client"
	"github.com/dmitrijs2005/aycode/internal/client/config"
	"github.com/dmitrijs2005/aycode/internal/client/credstore"
)

var errNotLoggedIn = errors.New("not logged in, run 'aycode login' first")

// App holds the state shared by every command of one invocation.
type App struct {
	config *config.Config
	api    *client.HTTPClient
	store  *credstore.Store
	reader *bufio.Reader
	out    io.Writer
}

// init builds the API client and loads the stored session for its host.
func (a *App) init(cfg *config.Config) error {
	a.config = cfg

	path := cfg.CredentialsPath
	if path == "" {
		p, err := credstore.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	a.store = credstore.New(path)

	api, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	a.api = api

	cred, err := a.store.Get(api.Host())
	switch {
	case err == nil:
		api.SetToken(cred.Token)
	case errors.Is(err, credstore.ErrCredentialNotFound):
	default:
		return err
	}
	return nil
}

func (a *App) loggedIn() bool {
	_, err := a.store.Get(a.api.Host())
	return err == nil
}

// explain turns API errors into messages for the terminal. A rejected
// session is dropped from the store so the next command starts clean.
func (a *App) explain(err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("server %s is unavailable", a.config.ServerURL)
	case errors.Is(err, client.ErrUnauthorized):
		if a.loggedIn() {
			_ = a.store.Delete(a.api.Host())
			return errors.New("session expired or invalid, please log in again")
		}
		return err
	default:
		return err
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
