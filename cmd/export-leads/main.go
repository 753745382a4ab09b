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
	"lawyer_landing_go/db"
	"lawyer_landing_go/logger"
	"lawyer_landing_go/services"
)

func main() {
	out := flag.String("out", "", "output file (default contatos-YYYYMMDD.xlsx)")
	limit := flag.Int("limit", 10000, "maximum number of leads to export")
	upload := flag.Bool("upload", false, "also upload the workbook to artifact storage")
	flag.Parse()

	cfg := config.Load()
	if err := logger.Initialize(logger.Config{Level: cfg.LogLevel, Environment: cfg.Environment}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.LeadStore == config.LeadStoreSupabase {
		log.Fatal("Lead export reads the SQL database; LEAD_STORE=supabase keeps leads in Supabase")
	}

	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	leads, err := services.NewGormLeadStore(db.DB).List(ctx, *limit)
	if err != nil {
		log.Fatalf("Failed to list leads: %v", err)
	}

	buf, err := services.BuildLeadWorkbook(leads)
	if err != nil {
		log.Fatalf("Failed to build workbook: %v", err)
	}

	now := time.Now().UTC()
	path := *out
	if path == "" {
		path = fmt.Sprintf("contatos-%s.xlsx", now.Format("20060102"))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	fmt.Printf("✓ Exported %d leads to %s\n", len(leads), path)

	if !*upload {
		return
	}
	storage := services.NewArtifactStorage(ctx, cfg, cfg.ArtifactDir)
	key := services.GenerateArtifactKey("exports", "leads", ".xlsx", now)
	result, err := storage.UploadReader(ctx, bytes.NewReader(buf.Bytes()), key, services.XLSXContentType, int64(buf.Len()))
	if err != nil {
		log.Fatalf("Failed to upload workbook: %v", err)
	}
	fmt.Printf("✓ Uploaded to %s (%s)\n", result.Key, storage.Kind())
}
