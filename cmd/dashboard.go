package cmd

import (
	"github.com/jon4hz/artfolio/internal/dashboard"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the admin overview",
	Long:  `Shows artwork, message and subscriber counts and the most recent contact messages. Sources that fail are reported without hiding the others.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, err := a.adminContext(cmd, artfolio.RouteAdminDashboard)
		if err != nil {
			return err
		}

		summary := dashboard.Load(ctx, a.public, a.admin)
		if err := a.out.Dashboard(summary); err != nil {
			return err
		}
		return adminError(summary.Err())
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
