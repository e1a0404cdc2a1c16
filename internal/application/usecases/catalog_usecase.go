package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"virtuwear/internal/domain/entities"
	"virtuwear/internal/domain/valueobjects"
)

const (
	DefaultSrcPrefix  = "assets/img_out"
	DefaultThumbWidth = 256
)

// CatalogUseCase scans the garment folder and writes the front-end
// products.json.
type CatalogUseCase struct {
	logger *slog.Logger
}

func NewCatalogUseCase(logger *slog.Logger) *CatalogUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogUseCase{logger: logger}
}

type CatalogOptions struct {
	CatalogDir string
	// OutputFile defaults to products.json next to CatalogDir.
	OutputFile string
	// SrcPrefix is the URL path under which catalog files are served.
	SrcPrefix string

	// ThumbDir enables thumbnail generation when set.
	ThumbDir    string
	ThumbPrefix string
	ThumbWidth  uint

	Workers int
}

type CatalogSummary struct {
	OutputFile string
	Products   []entities.Product
	Valid      int
	Skipped    []string
}

type scanResult struct {
	name  string
	thumb string
	err   error
}

func (uc *CatalogUseCase) Generate(ctx context.Context, opts CatalogOptions) (*CatalogSummary, error) {
	opts = withCatalogDefaults(opts)

	entries, err := os.ReadDir(opts.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var names []string
	var skipped []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !valueobjects.IsAllowedExtension(entry.Name()) {
			skipped = append(skipped, entry.Name())
			continue
		}
		names = append(names, entry.Name())
	}

	if opts.ThumbDir != "" {
		if err := os.MkdirAll(opts.ThumbDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
		}
	}

	// Results are indexed by listing position so numbering stays stable
	// regardless of which worker finishes first.
	results := make([]scanResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = uc.scan(opts, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &CatalogSummary{OutputFile: opts.OutputFile, Products: []entities.Product{}}
	for _, r := range results {
		if r.err != nil {
			uc.logger.Warn("Skipping corrupted image", "file", r.name, "error", r.err)
			skipped = append(skipped, r.name)
			continue
		}
		summary.Valid++
		summary.Products = append(summary.Products, entities.NewProduct(summary.Valid, r.name, opts.SrcPrefix, r.thumb))
	}
	summary.Skipped = skipped

	data, err := json.MarshalIndent(summary.Products, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode products: %w", err)
	}
	if err := os.WriteFile(opts.OutputFile, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.OutputFile, err)
	}

	uc.logger.Info("Generated catalog",
		"output", opts.OutputFile,
		"valid", summary.Valid,
		"skipped", len(summary.Skipped))
	return summary, nil
}

func (uc *CatalogUseCase) scan(opts CatalogOptions, name string) scanResult {
	res := scanResult{name: name}

	data, err := os.ReadFile(filepath.Join(opts.CatalogDir, name))
	if err != nil {
		res.err = err
		return res
	}

	if opts.ThumbDir == "" {
		// Header and dimensions only, like a verify pass.
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			res.err = err
		}
		return res
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		res.err = err
		return res
	}

	thumbName := strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	if err := writeThumbnail(filepath.Join(opts.ThumbDir, thumbName), img, opts.ThumbWidth); err != nil {
		res.err = fmt.Errorf("thumbnail: %w", err)
		return res
	}
	res.thumb = path.Join(opts.ThumbPrefix, thumbName)
	return res
}

// writeThumbnail fits img into a width x width box and stores it as JPEG,
// flattening transparency onto white.
func writeThumbnail(dst string, img image.Image, width uint) error {
	thumb := resize.Thumbnail(width, width, img, resize.Lanczos3)

	b := thumb.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), thumb, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: 85}); err != nil {
		return err
	}
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}

func withCatalogDefaults(opts CatalogOptions) CatalogOptions {
	if opts.OutputFile == "" {
		opts.OutputFile = filepath.Join(filepath.Dir(filepath.Clean(opts.CatalogDir)), "products.json")
	}
	if opts.SrcPrefix == "" {
		opts.SrcPrefix = DefaultSrcPrefix
	}
	if opts.ThumbPrefix == "" && opts.ThumbDir != "" {
		opts.ThumbPrefix = path.Join(path.Dir(opts.SrcPrefix), filepath.Base(opts.ThumbDir))
	}
	if opts.ThumbWidth == 0 {
		opts.ThumbWidth = DefaultThumbWidth
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return opts
}
