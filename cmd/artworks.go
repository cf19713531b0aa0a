package cmd

import (
	"fmt"

	"github.com/jon4hz/artfolio/internal/filter"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/spf13/cobra"
)

var artworksCmd = &cobra.Command{
	Use:     "artworks",
	Aliases: []string{"artwork", "gallery"},
	Short:   "Browse and manage artworks",
}

var artworksListCmdFlags struct {
	Featured bool
	Limit    int
	Category string
	Search   string
	Tag      string
}

var artworksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List artworks",
	Example: `artfolio artworks list --featured --limit 6
  artfolio artworks list --category landscape --search sunset`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := artfolio.WithRoute(cmd.Context(), artfolio.RouteGallery)

		f := artworksListCmdFlags
		artworks, err := a.public.GetArtworks(ctx, f.Featured, f.Limit)
		if err != nil {
			return err
		}
		artworks, err = filter.Artworks(f.Search, f.Category, f.Tag, false).ApplyAll(ctx, artworks)
		if err != nil {
			return err
		}
		return a.out.Artworks(artworks)
	},
}

var artworksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single artwork",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		artwork, err := a.public.GetArtwork(artfolio.WithRoute(cmd.Context(), artfolio.RouteGallery), args[0])
		if err != nil {
			return err
		}
		return a.out.Artwork(artwork)
	},
}

// artworkFlags are shared by create and update.
var artworkFlags struct {
	Title       string
	Description string
	Price       string
	Category    string
	Tags        string
	ImageURL    string
	EtsyURL     string
	GumroadURL  string
	Featured    bool
}

func addArtworkFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&artworkFlags.Title, "title", "", "Title")
	cmd.Flags().StringVar(&artworkFlags.Description, "description", "", "Description")
	cmd.Flags().StringVar(&artworkFlags.Price, "price", "", "Price, e.g. 49.99 (unparsable values become 0)")
	cmd.Flags().StringVar(&artworkFlags.Category, "category", "", fmt.Sprintf("Category (one of %v)", artfolio.Categories))
	cmd.Flags().StringVar(&artworkFlags.Tags, "tags", "", "Comma separated tags")
	cmd.Flags().StringVar(&artworkFlags.ImageURL, "image-url", "", "Image URL, e.g. as returned by upload")
	cmd.Flags().StringVar(&artworkFlags.EtsyURL, "etsy-url", "", "Etsy listing URL")
	cmd.Flags().StringVar(&artworkFlags.GumroadURL, "gumroad-url", "", "Gumroad product URL")
	cmd.Flags().BoolVar(&artworkFlags.Featured, "featured", false, "Feature on the home page")
}

// applyArtworkFlags copies the flags the user set onto artwork.
func applyArtworkFlags(cmd *cobra.Command, artwork *artfolio.Artwork) {
	changed := cmd.Flags().Changed
	if changed("title") {
		artwork.Title = artworkFlags.Title
	}
	if changed("description") {
		artwork.Description = artworkFlags.Description
	}
	if changed("price") {
		price := artfolio.ParsePrice(artworkFlags.Price)
		artwork.Price = &price
	}
	if changed("category") {
		artwork.Category = artworkFlags.Category
	}
	if changed("tags") {
		artwork.Tags = artfolio.ParseTags(artworkFlags.Tags)
	}
	if changed("image-url") {
		artwork.ImageURL = artworkFlags.ImageURL
	}
	if changed("etsy-url") {
		artwork.EtsyURL = artworkFlags.EtsyURL
	}
	if changed("gumroad-url") {
		artwork.GumroadURL = artworkFlags.GumroadURL
	}
	if changed("featured") {
		artwork.Featured = artworkFlags.Featured
	}
}

var artworksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an artwork",
	Example: `artfolio artworks create --title "Dune" --category landscape --price 120 \
    --tags "sand, warm" --image-url /uploads/abc.png --featured`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, err := a.adminContext(cmd, artfolio.RouteAdminArtworks)
		if err != nil {
			return err
		}

		artwork := artfolio.Artwork{Tags: []string{}}
		applyArtworkFlags(cmd, &artwork)
		if artwork.Price == nil {
			artwork.Price = new(float64)
		}

		resp, err := a.admin.CreateArtwork(ctx, artwork)
		if err != nil {
			return adminError(err)
		}
		return a.out.Message(resp)
	},
}

var artworksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an artwork",
	Long:  `Fetches the artwork, applies the given flags and sends the whole record back.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, err := a.adminContext(cmd, artfolio.RouteAdminArtworks)
		if err != nil {
			return err
		}

		artwork, err := a.public.GetArtwork(ctx, args[0])
		if err != nil {
			return err
		}
		applyArtworkFlags(cmd, artwork)
		artwork.ID = ""
		artwork.CreatedAt = nil

		resp, err := a.admin.UpdateArtwork(ctx, args[0], *artwork)
		if err != nil {
			return adminError(err)
		}
		return a.out.Message(resp)
	},
}

var artworksDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an artwork",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, err := a.adminContext(cmd, artfolio.RouteAdminArtworks)
		if err != nil {
			return err
		}
		resp, err := a.admin.DeleteArtwork(ctx, args[0])
		if err != nil {
			return adminError(err)
		}
		return a.out.Message(resp)
	},
}

func init() {
	artworksListCmd.Flags().BoolVar(&artworksListCmdFlags.Featured, "featured", false, "Only featured artworks")
	artworksListCmd.Flags().IntVar(&artworksListCmdFlags.Limit, "limit", 50, "Maximum number of artworks to fetch")
	artworksListCmd.Flags().StringVar(&artworksListCmdFlags.Category, "category", filter.CategoryAll, "Only this category")
	artworksListCmd.Flags().StringVar(&artworksListCmdFlags.Search, "search", "", "Search title and description")
	artworksListCmd.Flags().StringVar(&artworksListCmdFlags.Tag, "tag", "", "Only artworks with this tag")

	addArtworkFlags(artworksCreateCmd)
	_ = artworksCreateCmd.MarkFlagRequired("title")
	addArtworkFlags(artworksUpdateCmd)

	artworksCmd.AddCommand(artworksListCmd, artworksGetCmd, artworksCreateCmd, artworksUpdateCmd, artworksDeleteCmd)
	rootCmd.AddCommand(artworksCmd)
}
