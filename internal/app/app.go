package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/config"
	"github.com/templui/goalpace/internal/db"
	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/service"
	"github.com/templui/goalpace/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	ProfileService *service.ProfileService
	GoalService    *service.GoalService
	ReviewService  *service.ReviewService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Storage (nil when snapshot export is disabled)
	snapshots, err := storage.New(cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	return Wire(cfg, database, snapshots), nil
}

// Wire builds the services on top of an open, migrated database.
func Wire(cfg *config.Config, database *sqlx.DB, snapshots storage.Storage) *App {
	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	activityRepository := repository.NewActivityRepository(database)
	complianceRepository := repository.NewComplianceRepository(database)
	progressRepository := repository.NewProgressRepository(database)

	// Services
	profileService := service.NewProfileService(profileRepository)
	goalService := service.NewGoalService(
		goalRepository,
		profileRepository,
		activityRepository,
		complianceRepository,
		progressRepository,
		repository.NewTransactor(database),
		cfg.ComplianceWindow,
	)
	reviewService := service.NewReviewService(goalRepository, goalService, snapshots, cfg.ReviewConcurrency)

	return &App{
		Cfg:            cfg,
		DB:             database,
		ProfileService: profileService,
		GoalService:    goalService,
		ReviewService:  reviewService,
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
