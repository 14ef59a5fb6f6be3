package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simorghcare/intake/cmd/intake/wizard"
	"github.com/simorghcare/intake/internal/assessment"
	"github.com/simorghcare/intake/internal/persist"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	userID := flag.String("user", "", "Stable user identifier (empty = anonymous, in-memory only)")
	dataDir := flag.String("data-dir", defaultDataDir(), "Directory for the local database, log and submissions")
	catalogFile := flag.String("catalog", "", "Load the question catalog from a YAML file instead of the built-in one")
	scriptFile := flag.String("script", "", "Run headless from a YAML scenario file and print the payload")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("intake %s\n", version)
		os.Exit(0)
	}

	if err := run(*userID, *dataDir, *catalogFile, *scriptFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(userID, dataDir, catalogFile, scriptPath string) error {
	catalog, rules, err := loadCatalog(catalogFile)
	if err != nil {
		return err
	}

	logger := openLogger(dataDir)
	defer logger.Sync()

	var store assessment.Store
	if userID != "" {
		sqlite, err := persist.OpenSQLite(filepath.Join(dataDir, "intake.db"))
		if err != nil {
			// A broken backend degrades to an in-memory session rather
			// than blocking the wizard.
			logger.Warn("opening local database, running in-memory", zap.Error(err))
		} else {
			defer sqlite.Close()
			store = sqlite
		}
	}

	engine := assessment.New(catalog, rules, assessment.Options{
		UserID: userID,
		Store:  store,
		Submit: fileTransport(filepath.Join(dataDir, "submissions")),
		Logger: logger,
	})

	if scriptPath != "" {
		return runScript(engine, scriptPath, os.Stdout)
	}
	return wizard.Run(engine)
}

func loadCatalog(path string) (*assessment.Catalog, assessment.Rules, error) {
	if path != "" {
		return assessment.LoadCatalogFile(path)
	}
	return assessment.LoadCatalog()
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".intake"
	}
	return filepath.Join(home, ".intake")
}

// openLogger builds a file logger under the data dir so the alt-screen
// stays clean. Falls back to a nop logger when the file cannot be opened.
func openLogger(dataDir string) *zap.Logger {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dataDir, "intake.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// fileTransport is the stand-in submit collaborator: it writes the payload
// as YAML into the submissions directory. A real deployment swaps this for
// the network transport.
func fileTransport(dir string) assessment.SubmitFunc {
	return func(ctx context.Context, payload assessment.Payload) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating submissions directory: %w", err)
		}
		data, err := yaml.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding submission: %w", err)
		}
		path := filepath.Join(dir, payload.SubmissionID+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing submission: %w", err)
		}
		return nil
	}
}
