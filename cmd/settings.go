package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/jon4hz/artfolio/pkg/artfolio"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the site settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the site settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		settings, err := a.public.GetSiteSettings(artfolio.WithRoute(cmd.Context(), artfolio.RouteAbout))
		if err != nil {
			return err
		}
		return a.out.Settings(settings)
	},
}

var settingsSetCmdFlags struct {
	File string
	artfolio.SiteSettings
}

// settingsFields maps flag names to the field they set.
var settingsFields = []struct {
	flag  string
	usage string
	field func(*artfolio.SiteSettings) *string
}{
	{"site-title", "Site title", func(s *artfolio.SiteSettings) *string { return &s.SiteTitle }},
	{"artist-name", "Artist name", func(s *artfolio.SiteSettings) *string { return &s.ArtistName }},
	{"bio", "Artist bio", func(s *artfolio.SiteSettings) *string { return &s.Bio }},
	{"hero-title", "Home page hero title", func(s *artfolio.SiteSettings) *string { return &s.HeroTitle }},
	{"hero-subtitle", "Home page hero subtitle", func(s *artfolio.SiteSettings) *string { return &s.HeroSubtitle }},
	{"etsy-shop-url", "Etsy shop URL", func(s *artfolio.SiteSettings) *string { return &s.EtsyShopURL }},
	{"gumroad-url", "Gumroad profile URL", func(s *artfolio.SiteSettings) *string { return &s.GumroadURL }},
	{"contact-email", "Public contact email", func(s *artfolio.SiteSettings) *string { return &s.ContactEmail }},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the site settings",
	Long:  `Replaces the whole settings record. Start from a TOML file with --file, or from the current settings; field flags are applied on top.`,
	Example: `artfolio settings set --file settings.toml
  artfolio settings set --artist-name "Mira K." --contact-email mira@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, err := a.adminContext(cmd, artfolio.RouteAdminSettings)
		if err != nil {
			return err
		}

		var settings artfolio.SiteSettings
		if settingsSetCmdFlags.File != "" {
			settings, err = readSettingsFile(settingsSetCmdFlags.File)
			if err != nil {
				return err
			}
		} else {
			current, err := a.public.GetSiteSettings(ctx)
			if err != nil {
				return err
			}
			settings = *current
		}

		changed := 0
		for _, f := range settingsFields {
			if cmd.Flags().Changed(f.flag) {
				*f.field(&settings) = *f.field(&settingsSetCmdFlags.SiteSettings)
				changed++
			}
		}
		if settingsSetCmdFlags.File == "" && changed == 0 {
			return errors.New("nothing to change, pass --file or at least one field flag")
		}

		resp, err := a.admin.UpdateSiteSettings(ctx, settings)
		if err != nil {
			return adminError(err)
		}
		return a.out.Message(resp)
	},
}

var settingsInitCmdFlags struct {
	Force bool
}

var settingsInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write a settings file with the default values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := writeSettingsFile(args[0], artfolio.DefaultSiteSettings(), settingsInitCmdFlags.Force); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote default settings to %s\n", args[0])
		return err
	},
}

func readSettingsFile(path string) (artfolio.SiteSettings, error) {
	var settings artfolio.SiteSettings
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return settings, nil
}

func writeSettingsFile(path string, settings artfolio.SiteSettings, force bool) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o644) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return file.Close()
}

func init() {
	settingsSetCmd.Flags().StringVarP(&settingsSetCmdFlags.File, "file", "f", "", "TOML file with the complete settings record")
	for _, f := range settingsFields {
		settingsSetCmd.Flags().StringVar(f.field(&settingsSetCmdFlags.SiteSettings), f.flag, "", f.usage)
	}
	settingsInitCmd.Flags().BoolVar(&settingsInitCmdFlags.Force, "force", false, "Overwrite an existing file")

	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}
