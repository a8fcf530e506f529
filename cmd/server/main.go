package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interntrack/intern-track/internal/api"
	"interntrack/intern-track/internal/config"
	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/logger"
	"interntrack/intern-track/internal/repository"
	"interntrack/intern-track/internal/repository/memory"
	"interntrack/intern-track/internal/repository/mongo"
	"interntrack/intern-track/internal/service"
	"interntrack/intern-track/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

type repositories struct {
	students     repository.StudentRepository
	coordinators repository.CoordinatorRepository
	internships  repository.InternshipRepository
	close        func()
}

// @title Intern Track API
// @version 1.0
// @description Student internship submissions and coordinator review.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	flags := pflag.NewFlagSet("intern-track", pflag.ExitOnError)
	configDir := flags.String("config", ".", "directory containing config.yaml")
	flags.String("address", "", "listen address, overrides server.address")
	_ = flags.Parse(os.Args[1:])

	// --- Configuration ---
	cfg, err := config.LoadConfig(*configDir, flags)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load config")
	}
	logger.Configure(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.Info().Str("driver", cfg.Database.Driver).Str("documentsRoot", cfg.Documents.Root).Msg("Configuration loaded")

	// --- Repositories ---
	repos, err := openRepositories(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not open record store")
	}
	defer repos.close()

	// --- Document Storage ---
	planner, err := storage.NewPlanner(cfg.Documents.Root)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not prepare documents root")
	}
	store := storage.NewLocalDocumentStore(planner, cfg.Documents.MaxSize)

	var mirror storage.Mirror
	if cfg.S3.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		mirror, err = storage.NewS3Mirror(ctx, cfg.S3)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize S3 mirror")
		}
	}

	// --- Services ---
	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = domain.DefaultBcryptCost
	}
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
	authService := service.NewAuthService(repos.students, repos.coordinators, tokenService, bcryptCost)
	studentService := service.NewStudentService(repos.students)
	internshipService := service.NewInternshipService(repos.internships, store, mirror, service.InternshipOptions{
		URLPrefix:     cfg.Documents.URLPrefix,
		PresignExpiry: cfg.S3.PresignExpiry,
	})
	resolver := service.NewPrincipalResolver(tokenService, repos.students, repos.coordinators)

	// --- Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	router.MaxMultipartMemory = 8 << 20

	api.SetupRoutes(router, api.RouterConfig{
		AuthService:        authService,
		StudentService:     studentService,
		InternshipService:  internshipService,
		Resolver:           resolver,
		DocumentsRoot:      planner.Root(),
		DocumentsURLPrefix: cfg.Documents.URLPrefix,
		MaxUploadSize:      cfg.Documents.MaxSize,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exiting")
}

func openRepositories(cfg config.DatabaseConfig) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn().Msg("Using in-memory record store; data is lost on exit")
		return &repositories{
			students:     memory.NewStudentRepository(),
			coordinators: memory.NewCoordinatorRepository(),
			internships:  memory.NewInternshipRepository(),
			close:        func() {},
		}, nil
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Name)

	// Unique indexes back the duplicate-key guarantees, so they must exist
	// before the first request.
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = mongo.DisconnectDB(client)
		return nil, err
	}
	logger.Info().Str("database", cfg.Name).Msg("Database connection established")

	return &repositories{
		students:     mongo.NewMongoStudentRepository(db),
		coordinators: mongo.NewMongoCoordinatorRepository(db),
		internships:  mongo.NewMongoInternshipRepository(db),
		close: func() {
			logger.Info().Msg("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(client); err != nil {
				logger.Error().Err(err).Msg("Failed to disconnect MongoDB")
			}
		},
	}, nil
}
