package cmd

import (
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/spf13/cobra"
)

var contactCmdFlags artfolio.ContactForm

var contactCmd = &cobra.Command{
	Use:     "contact",
	Short:   "Send a message through the contact form",
	Example: `artfolio contact --name Ada --email ada@example.com --message "Is the print still available?"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		resp, err := a.public.SubmitContact(artfolio.WithRoute(cmd.Context(), artfolio.RouteContact), contactCmdFlags)
		if err != nil {
			return err
		}
		return a.out.Message(resp)
	},
}

var subscribeCmdFlags artfolio.NewsletterSignup

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Sign up for the newsletter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		resp, err := a.public.NewsletterSignup(artfolio.WithRoute(cmd.Context(), artfolio.RouteHome), subscribeCmdFlags)
		if err != nil {
			return err
		}
		return a.out.Message(resp)
	},
}

func init() {
	contactCmd.Flags().StringVar(&contactCmdFlags.Name, "name", "", "Your name")
	contactCmd.Flags().StringVar(&contactCmdFlags.Email, "email", "", "Your email address")
	contactCmd.Flags().StringVar(&contactCmdFlags.Message, "message", "", "Message")

	subscribeCmd.Flags().StringVar(&subscribeCmdFlags.Email, "email", "", "Email address")
	subscribeCmd.Flags().StringVar(&subscribeCmdFlags.Name, "name", "", "Name (optional)")

	rootCmd.AddCommand(contactCmd, subscribeCmd)
}
