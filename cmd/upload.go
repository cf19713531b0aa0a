package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/artfolio/internal/imageprep"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/spf13/cobra"
)

var uploadCmdFlags struct {
	Resize bool
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image",
	Long:  `Uploads an image to the backend and prints the URL to use as an artwork's image. With --resize the image is first shrunk to the configured bounding box.`,
	Example: `artfolio upload sunset.png
  artfolio upload --resize huge-scan.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, err := a.adminContext(cmd, artfolio.RouteAdminArtworks)
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer file.Close() //nolint:errcheck

		resize := cfg.Upload.Resize
		if cmd.Flags().Changed("resize") {
			resize = uploadCmdFlags.Resize
		}
		maxWidth, maxHeight := cfg.Upload.MaxWidth, cfg.Upload.MaxHeight
		if !resize {
			// only validate, never shrink
			maxWidth, maxHeight = int(^uint(0)>>1), int(^uint(0)>>1)
		}

		prepared, err := imageprep.New(maxWidth, maxHeight, cfg.Upload.Quality).Prepare(file, args[0])
		if err != nil {
			return err
		}
		if prepared.Resized {
			log.Info("Resized image before upload", "file", args[0], "width", prepared.Width, "height", prepared.Height)
		}

		resp, err := a.admin.UploadImage(ctx, prepared.Filename, bytes.NewReader(prepared.Data))
		if err != nil {
			return adminError(err)
		}
		return a.out.Upload(resp, len(prepared.Data), prepared.Width, prepared.Height, prepared.Resized)
	},
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadCmdFlags.Resize, "resize", false, "Shrink the image to upload.max_width x upload.max_height first")
	rootCmd.AddCommand(uploadCmd)
}
