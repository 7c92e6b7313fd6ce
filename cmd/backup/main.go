package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"silabas/internal/config"
	"silabas/internal/service"
	"silabas/internal/storage"
	"silabas/pkg/logging"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := storage.OpenSQLite(cfg.StoragePath)
	if err != nil {
		slog.Error("failed to open storage", "path", cfg.StoragePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	backup := service.NewBackupService(store)
	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, backup, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, backup, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, backup *service.BackupService, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("failed to create output directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("exporting storage", "output", outputPath)
	if err := backup.Export(ctx, outputPath); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}

	if fileInfo, err := os.Stat(outputPath); err == nil {
		slog.Info("export complete", "bytes", fileInfo.Size())
	}
}

func handleImport(ctx context.Context, backup *service.BackupService, inputPath string, clearData bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		slog.Error("input file does not exist", "path", inputPath)
		os.Exit(1)
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			slog.Info("import cancelled")
			return
		}
	}

	slog.Info("importing storage", "input", inputPath, "clear", clearData)
	restored, err := backup.Import(ctx, inputPath, clearData)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
	slog.Info("import complete", "entries", restored)
}

func printUsage() {
	fmt.Println("Sílabas Storage Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export storage to JSON file")
	fmt.Println("  backup import [options]    Import storage from JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  backup export")
	fmt.Println("  backup export -output mybackup.json")
	fmt.Println("  backup import -input backup.json")
	fmt.Println("  backup import -input backup.json -clear")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  STORAGE_PATH     SQLite storage path (default: ./silabas.db)")
	fmt.Println("  LOG_LEVEL        Log level: debug, info, warn, error (default: info)")
}
