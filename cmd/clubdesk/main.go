package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/handler"
	"github.com/noah-isme/sma-clubs/internal/repository"
	"github.com/noah-isme/sma-clubs/internal/service"
	"github.com/noah-isme/sma-clubs/pkg/config"
	"github.com/noah-isme/sma-clubs/pkg/database"
	"github.com/noah-isme/sma-clubs/pkg/logger"
	"github.com/noah-isme/sma-clubs/pkg/storage"
)

func main() {
	initSchema := pflag.Bool("init-schema", false, "create missing tables before starting the console")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(nil, "failed to load config", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal(nil, "invalid config", err)
	}

	base, err := logger.New(cfg)
	if err != nil {
		logger.Fatal(nil, "failed to init logger", err)
	}
	logr := base.With(zap.String("session_id", uuid.NewString()))
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatal(logr, "database connection failed", err)
	}
	defer db.Close()
	logr.Info("database connected", zap.String("driver", cfg.Database.Driver), zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Name))

	if *initSchema {
		if err := database.ApplySchema(ctx, db); err != nil {
			logger.Fatal(logr, "failed to apply schema", err)
		}
		logr.Info("schema ready")
	}

	metrics := service.NewMetricsService()
	tables := repository.NewTables(ctx, db, repository.WithLogger(logr), repository.WithObserver(metrics))

	clubStudentRepo := repository.NewClubStudentRepository(tables)
	gatheringStudentRepo := repository.NewGatheringStudentRepository(tables)

	clubStudents := service.NewClubStudentService(clubStudentRepo, nil, logr)
	gatheringStudents := service.NewGatheringStudentService(gatheringStudentRepo, nil)
	activities := service.NewActivityService(repository.NewActivityRepository(tables), nil, logr)

	store, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		logger.Fatal(logr, "failed to prepare export directory", err)
	}

	svc := handler.Services{
		Students:          service.NewStudentService(repository.NewStudentRepository(tables), nil, logr),
		Professors:        service.NewProfessorService(repository.NewProfessorRepository(tables), nil, logr),
		Clubs:             service.NewClubService(repository.NewClubRepository(tables), clubStudents, activities, nil, logr),
		Gatherings:        service.NewGatheringService(repository.NewGatheringRepository(tables), gatheringStudents, nil, logr),
		ClubStudents:      clubStudents,
		GatheringStudents: gatheringStudents,
		Metrics:           metrics,
		Export:            service.NewExportService(store, logr),
	}

	if err := handler.NewConsole(os.Stdin, os.Stdout, svc, logr).Run(ctx); err != nil {
		logr.Error("console stopped", zap.Error(err))
	}
}
