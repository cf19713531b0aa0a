package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/spf13/cobra"
)

var loginCmdFlags struct {
	Username      string
	Password      string
	PasswordStdin bool
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as portfolio admin",
	Long:  `Checks the credentials against the backend and keeps them in the session file for later admin commands.`,
	Example: `artfolio login -u admin -p admin123
  echo "$PASSWORD" | artfolio login -u admin --password-stdin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		password := loginCmdFlags.Password
		if loginCmdFlags.PasswordStdin {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read password from stdin: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		resp, err := a.admin.Login(cmd.Context(), loginCmdFlags.Username, password)
		if err != nil {
			if errors.Is(err, artfolio.ErrAuth) {
				return errors.New("invalid credentials")
			}
			return err
		}
		log.Debug("Session stored", "path", a.store.Path())
		return a.out.Message(resp)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored admin credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.admin.Logout(artfolio.WithRoute(cmd.Context(), artfolio.RouteAdminDashboard)); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return err
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the admin session state",
	Long:  `Reports whether admin credentials are stored. The backend is not contacted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		state := a.admin.State()
		line := state.String()
		if creds, ok := a.store.Get(); ok {
			line += " as " + creds.Username
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (backend %s)\n", line, a.admin.Core().BaseURL())
		return err
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginCmdFlags.Username, "username", "u", "", "Admin username")
	loginCmd.Flags().StringVarP(&loginCmdFlags.Password, "password", "p", "", "Admin password")
	loginCmd.Flags().BoolVar(&loginCmdFlags.PasswordStdin, "password-stdin", false, "Read the password from stdin")
	loginCmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	_ = loginCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd)
}
