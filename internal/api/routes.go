package api

import (
	"net/http"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/logger"
	"interntrack/intern-track/internal/service"
	"interntrack/intern-track/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RouterConfig carries everything SetupRoutes wires together.
type RouterConfig struct {
	AuthService       service.AuthService
	StudentService    service.StudentService
	InternshipService service.InternshipService
	Resolver          service.PrincipalResolver

	DocumentsRoot      string
	DocumentsURLPrefix string
	MaxUploadSize      int64
}

func SetupRoutes(router *gin.Engine, cfg RouterConfig) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.Register(v); err != nil {
			logger.Fatal().Err(err).Msg("Failed to register validation rules")
		}
	}

	authHandler := NewAuthHandler(cfg.AuthService)
	studentHandler := NewStudentHandler(cfg.StudentService)
	internshipHandler := NewInternshipHandler(cfg.InternshipService, cfg.MaxUploadSize)
	coordinatorHandler := NewCoordinatorHandler(cfg.InternshipService)

	authMiddleware := AuthMiddleware(cfg.Resolver)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if cfg.DocumentsRoot != "" && cfg.DocumentsURLPrefix != "" {
		router.StaticFS(cfg.DocumentsURLPrefix, gin.Dir(cfg.DocumentsRoot, false))
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/register/student", authHandler.RegisterStudent)
		apiV1.POST("/register/coordinator", authHandler.RegisterCoordinator)
		apiV1.POST("/login/student", authHandler.LoginStudent)
		apiV1.POST("/login/coordinator", authHandler.LoginCoordinator)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Student Routes ---
		studentOnly := RequireKind(domain.KindStudent)
		protected.POST("/internships", studentOnly, internshipHandler.Submit)
		protected.GET("/internships", studentOnly, internshipHandler.ListMine)

		studentGroup := protected.Group("/student")
		studentGroup.Use(studentOnly)
		{
			studentGroup.GET("/details", studentHandler.GetDetails)
			studentGroup.PUT("/details", studentHandler.UpdateDetails)
		}

		// --- Coordinator Routes ---
		coordinatorGroup := protected.Group("/coordinator")
		coordinatorGroup.Use(RequireKind(domain.KindCoordinator))
		{
			coordinatorGroup.GET("/internships", coordinatorHandler.ListInternships)
			coordinatorGroup.GET("/internships/:id/document", coordinatorHandler.GetDocumentLink)
		}
	}
}
