package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lawyer_landing_go/config"
	"lawyer_landing_go/logger"
	"lawyer_landing_go/services"
)

func main() {
	cfg := config.Load()

	defaults := services.DefaultSnapshotOptions()
	url := flag.String("url", cfg.AppURL, "page to capture")
	format := flag.String("format", defaults.Format, "png or pdf")
	width := flag.Int64("width", defaults.Width, "viewport width")
	height := flag.Int64("height", defaults.Height, "viewport height")
	out := flag.String("out", "", "output file (default snapshot.<format>)")
	upload := flag.Bool("upload", false, "also upload the capture to artifact storage")
	flag.Parse()

	if err := logger.Initialize(logger.Config{Level: cfg.LogLevel, Environment: cfg.Environment}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	opts := defaults
	opts.Format = *format
	opts.Width = *width
	opts.Height = *height

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout+10*time.Second)
	defer cancel()

	data, err := services.SnapshotPage(ctx, *url, opts)
	if err != nil {
		log.Fatalf("Failed to capture %s: %v", *url, err)
	}

	path := *out
	if path == "" {
		path = "snapshot." + opts.Format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	fmt.Printf("✓ Captured %s to %s (%d bytes)\n", *url, path, len(data))

	if !*upload {
		return
	}
	storage := services.NewArtifactStorage(ctx, cfg, cfg.ArtifactDir)
	key := services.GenerateArtifactKey("snapshots", "landing", "."+opts.Format, time.Now().UTC())
	result, err := storage.UploadReader(ctx, bytes.NewReader(data), key, services.SnapshotContentType(opts.Format), int64(len(data)))
	if err != nil {
		log.Fatalf("Failed to upload snapshot: %v", err)
	}
	fmt.Printf("✓ Uploaded to %s (%s)\n", result.Key, storage.Kind())
}
