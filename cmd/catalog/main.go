package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"virtuwear/internal/application/usecases"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts usecases.CatalogOptions
	var verbose bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Generate products.json from the garment image folder",
		Long: `Scans the garment folder, skips files that do not decode as images,
and writes products.json for the front end. Optionally writes thumbnails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			summary, err := usecases.NewCatalogUseCase(logger).Generate(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %s\n", summary.OutputFile)
			fmt.Fprintf(out, "Total valid images: %d\n", summary.Valid)
			fmt.Fprintf(out, "Skipped invalid/corrupted: %d\n", len(summary.Skipped))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.CatalogDir, "dir", "d", "assets/img_out", "garment image folder")
	flags.StringVarP(&opts.OutputFile, "out", "o", "", "output file (default: products.json next to --dir)")
	flags.StringVar(&opts.SrcPrefix, "src-prefix", usecases.DefaultSrcPrefix, "URL path the garment folder is served under")
	flags.StringVar(&opts.ThumbDir, "thumbs", "", "write JPEG thumbnails into this folder")
	flags.StringVar(&opts.ThumbPrefix, "thumb-prefix", "", "URL path thumbnails are served under (default: sibling of --src-prefix)")
	flags.UintVar(&opts.ThumbWidth, "thumb-size", usecases.DefaultThumbWidth, "thumbnail bounding box in pixels")
	flags.IntVarP(&opts.Workers, "workers", "w", 0, "parallel decoders (default: number of CPUs)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return cmd
}
