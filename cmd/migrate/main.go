package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"marquee/adapters/excel"
	"marquee/adapters/postgres"
	"marquee/internal"
	"marquee/internal/container"
	"marquee/internal/dataset"

	"github.com/joho/godotenv"
)

// maxConcurrentImports bounds how many files are read and stored at once
const maxConcurrentImports = 4

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <data_file> [data_file...]\n  DATABASE_URL must be set; the schema is created if missing")
	}
	files := os.Args[1:]

	logger := internal.NewDefaultLogger()
	defer logger.Sync()

	ctx := context.Background()
	db, err := container.OpenDatabase(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	columns, err := excel.LoadColumnMap(os.Getenv("COLUMNS_FILE"))
	if err != nil {
		log.Fatalf("Failed to load column map: %v", err)
	}
	sheet := os.Getenv("DATA_SHEET")
	if sheet == "" {
		sheet = "Sheet1"
	}

	repo := postgres.NewRecordRepository(db)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentImports)
	for _, file := range files {
		file := file
		g.Go(func() error {
			snap, err := dataset.Import(gctx, repo, dataset.NewFileLoader(file, sheet, columns), file)
			if err != nil {
				logger.Error("Import of %s failed: %v", file, err)
				return err
			}
			logger.Info("Imported %d rows from %s as snapshot %s", snap.RowCount, file, snap.ID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	latest, err := repo.LatestSnapshot(ctx)
	if err != nil {
		log.Fatalf("Failed to read back latest snapshot: %v", err)
	}
	log.Printf("Migration complete: %d files imported, serving snapshot %s (%s)", len(files), latest.ID, latest.Source)
}
