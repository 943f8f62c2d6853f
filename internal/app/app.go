package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dormscout/dormscout/internal/config"
	"github.com/dormscout/dormscout/internal/db"
	"github.com/dormscout/dormscout/internal/repository"
	"github.com/dormscout/dormscout/internal/service"
	"github.com/dormscout/dormscout/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	AuthService    *service.AuthService
	ConsentService *service.ConsentService
	EmailService   *service.EmailService
	SchoolService  *service.SchoolService
	CampusService  *service.CampusService
	DormService    *service.DormService
	SavedService   *service.SavedDormService
	PostService    *service.PostService
	AdminService   *service.AdminService
	LegalService   *service.LegalService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	consentRepository := repository.NewConsentRepository(database)
	schoolRepository := repository.NewSchoolRepository(database)
	buildingRepository := repository.NewBuildingRepository(database)
	roomRepository := repository.NewRoomRepository(database)
	dormRepository := repository.NewDormRepository(database)
	savedRepository := repository.NewSavedDormRepository(database)
	postRepository := repository.NewPostRepository(database)
	photoRepository := repository.NewPhotoRepository(database)
	adminRepository := repository.NewAdminRepository(database)

	// Storage
	photoStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	consentService := service.NewConsentService(consentRepository)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		schoolRepository,
		tokenRepository,
		consentService,
		emailService,
		cfg,
	)
	schoolService := service.NewSchoolService(schoolRepository)
	campusService := service.NewCampusService(buildingRepository, roomRepository)
	dormService := service.NewDormService(dormRepository, schoolRepository, photoStorage)
	savedService := service.NewSavedDormService(savedRepository, dormRepository, dormService)
	postService := service.NewPostService(postRepository, photoRepository, roomRepository, photoStorage)
	adminService := service.NewAdminService(adminRepository, consentRepository)

	legalService := service.NewLegalService(cfg.ContentPath)
	if err := legalService.LoadPages(); err != nil {
		return nil, fmt.Errorf("failed to load legal content: %v", err)
	}

	return &App{
		Cfg:            cfg,
		DB:             database,
		AuthService:    authService,
		ConsentService: consentService,
		EmailService:   emailService,
		SchoolService:  schoolService,
		CampusService:  campusService,
		DormService:    dormService,
		SavedService:   savedService,
		PostService:    postService,
		AdminService:   adminService,
		LegalService:   legalService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
