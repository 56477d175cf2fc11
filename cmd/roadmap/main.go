package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/roadmap/internal/cli"
	"github.com/alexanderramin/roadmap/internal/config"
	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/intelligence"
	"github.com/alexanderramin/roadmap/internal/llm"
	"github.com/alexanderramin/roadmap/internal/logging"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/roadmap"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(filepath.Join(dataDir, "config.yaml"), dataDir)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	// Open database
	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer database.Close()

	// Wire repositories and unit of work
	progressRepo := repository.NewSQLiteProgressRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	roadmapSvc := service.NewRoadmapService(roadmap.NewSeededStore(), progressRepo, uow,
		service.NewZapUseCaseObserver(log))
	if err := roadmapSvc.Load(ctx); err != nil {
		return fmt.Errorf("loading progress: %w", err)
	}
	credentialSvc := service.NewCredentialService(settingsRepo)

	llmCfg := cfg.ClientConfig()
	if err := llmCfg.Validate(); err != nil {
		return fmt.Errorf("llm config: %w", err)
	}
	client := llm.NewGeminiClient(llmCfg, llm.NewZapObserver(log))

	app := &cli.App{
		Roadmap:     roadmapSvc,
		Credentials: credentialSvc,
		Partner:     intelligence.NewStudyPartner(client, credentialSvc, log),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	log.Debug("startup",
		zap.String("db", cfg.DB.Path),
		zap.String("model", llmCfg.Model),
	)

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
