package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jon4hz/artfolio/internal/export"
	"github.com/jon4hz/artfolio/internal/filter"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/spf13/cobra"
)

var inboxCmdFlags struct {
	Search string
	Export string
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contact form messages",
	Example: `artfolio contacts --search commission
  artfolio contacts --export contacts.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, err := a.adminContext(cmd, artfolio.RouteAdminContacts)
		if err != nil {
			return err
		}

		contacts, err := a.admin.GetContacts(ctx)
		if err != nil {
			return adminError(err)
		}
		contacts, err = filter.New[artfolio.ContactMessage](filter.NewContactSearch(inboxCmdFlags.Search)).ApplyAll(ctx, contacts)
		if err != nil {
			return err
		}

		if inboxCmdFlags.Export != "" {
			return writeExport(cmd, inboxCmdFlags.Export, func(w io.Writer) error {
				return export.Contacts(w, contacts)
			})
		}
		return a.out.Contacts(contacts)
	},
}

var subscribersCmd = &cobra.Command{
	Use:     "subscribers",
	Aliases: []string{"newsletter"},
	Short:   "List newsletter subscribers",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, err := a.adminContext(cmd, artfolio.RouteAdminContacts)
		if err != nil {
			return err
		}

		subscribers, err := a.admin.GetNewsletterSubscribers(ctx)
		if err != nil {
			return adminError(err)
		}
		subscribers, err = filter.New[artfolio.Subscriber](filter.NewSubscriberSearch(inboxCmdFlags.Search)).ApplyAll(ctx, subscribers)
		if err != nil {
			return err
		}

		if inboxCmdFlags.Export != "" {
			return writeExport(cmd, inboxCmdFlags.Export, func(w io.Writer) error {
				return export.Subscribers(w, subscribers)
			})
		}
		return a.out.Subscribers(subscribers)
	},
}

// writeExport writes to path, or to stdout when path is "-".
func writeExport(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return err
}

func init() {
	for _, c := range []*cobra.Command{contactsCmd, subscribersCmd} {
		c.Flags().StringVar(&inboxCmdFlags.Search, "search", "", "Only entries containing this text")
		c.Flags().StringVar(&inboxCmdFlags.Export, "export", "", "Write CSV to this file instead of a table (- for stdout)")
	}
	rootCmd.AddCommand(contactsCmd, subscribersCmd)
}
