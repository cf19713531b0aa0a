package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/artfolio/internal/render"
	"github.com/jon4hz/artfolio/internal/session"
	"github.com/jon4hz/artfolio/internal/version"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in, run `artfolio login` first")

// app bundles the clients a command needs.
type app struct {
	store  *session.FileStore
	public *artfolio.PublicClient
	admin  *artfolio.AdminClient
	out    *render.Renderer
}

func newApp(cmd *cobra.Command) (*app, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	store, err := session.Open(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	admin, err := artfolio.NewAdmin(cfg.BackendURL, store, artfolio.NavigatorFunc(navigate),
		artfolio.WithTimeout(cfg.Timeout),
		artfolio.WithUserAgent(version.UserAgent()),
		artfolio.WithLogger(log.Default().WithPrefix("artfolio")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &app{
		store:  store,
		public: artfolio.NewPublicClient(admin.Core()),
		admin:  admin,
		out:    render.New(cmd.OutOrStdout()),
	}, nil
}

// navigate stands in for the view router. A CLI has no views to switch, so
// the request is only traced.
func navigate(_ context.Context, route string) {
	log.Debug("Navigating", "route", route)
}

// adminError turns a rejected admin request into a hint to log in again.
// The session has already been cleared by the client at this point.
func adminError(err error) error {
	if errors.Is(err, artfolio.ErrAuth) {
		return fmt.Errorf("admin session expired, run `artfolio login` again: %w", err)
	}
	return err
}

// requireLogin mirrors the protected admin views: without stored credentials
// no admin request is attempted.
func (a *app) requireLogin() error {
	if !a.admin.IsLoggedIn() {
		return errNotLoggedIn
	}
	return nil
}

// adminContext tags ctx with an admin route after checking the session.
func (a *app) adminContext(cmd *cobra.Command, route string) (context.Context, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	return artfolio.WithRoute(cmd.Context(), route), nil
}
