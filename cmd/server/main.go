package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ryotashiba/project-management-api/internal/auth"
	"github.com/ryotashiba/project-management-api/internal/config"
	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/handlers"
	"github.com/ryotashiba/project-management-api/internal/logging"
	"github.com/ryotashiba/project-management-api/internal/middleware"
	"github.com/ryotashiba/project-management-api/internal/repository"
	"github.com/ryotashiba/project-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize auth
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	oauthManager := auth.NewOAuthManager(cfg)

	// Initialize services
	tenants := services.NewTenantService(userRepo)
	authService := services.NewAuthService(userRepo, tokens)
	orgService := services.NewOrganizationService(orgRepo, userRepo)
	projectService := services.NewProjectService(tenants, projectRepo)
	taskService := services.NewTaskService(tenants, taskRepo, projectRepo, sprintRepo, userRepo)
	sprintService := services.NewSprintService(tenants, sprintRepo, projectRepo)
	timeEntryService := services.NewTimeEntryService(tenants, timeEntryRepo, taskRepo)
	calendarService := services.NewCalendarService(tenants, calendarRepo)
	settingsService := services.NewSettingsService(tenants, settingsRepo)
	dispatcher := services.NewDispatcher(cfg.InferenceURL, cfg.InferenceTimeout, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens, oauthManager, logger)
	orgHandler := handlers.NewOrganizationHandler(orgService, logger)
	projectHandler := handlers.NewProjectHandler(projectService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)
	sprintHandler := handlers.NewSprintHandler(sprintService, logger)
	timeEntryHandler := handlers.NewTimeEntryHandler(timeEntryService, logger)
	calendarHandler := handlers.NewCalendarHandler(calendarService, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)
	dispatchHandler := handlers.NewDispatchHandler(dispatcher, logger)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/oauth/:provider", authHandler.OAuthRedirect)
			authRoutes.GET("/oauth/:provider/callback", authHandler.OAuthCallback)
			authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth(tokens))
		{
			orgs.POST("", orgHandler.Create)
			orgs.GET("/current", orgHandler.GetCurrent)
			orgs.PATCH("/current", orgHandler.UpdateCurrent)
			orgs.DELETE("/current", orgHandler.DeleteCurrent)
			orgs.POST("/invite", orgHandler.Invite)
			orgs.POST("/leave", orgHandler.Leave)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.PATCH("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.POST("", taskHandler.Create)
			tasks.GET("", taskHandler.List)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PATCH("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
			tasks.POST("/:id/comments", taskHandler.AddComment)
			tasks.GET("/:id/comments", taskHandler.ListComments)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(middleware.RequireAuth(tokens))
		{
			comments.PATCH("/:commentId", taskHandler.UpdateComment)
			comments.DELETE("/:commentId", taskHandler.DeleteComment)
		}

		// Sprint routes (protected)
		sprints := api.Group("/sprints")
		sprints.Use(middleware.RequireAuth(tokens))
		{
			sprints.POST("", sprintHandler.Create)
			sprints.GET("", sprintHandler.List)
			sprints.PATCH("/:id", sprintHandler.Update)
			sprints.DELETE("/:id", sprintHandler.Delete)
		}

		// Time tracking routes (protected)
		timeEntries := api.Group("/time-entries")
		timeEntries.Use(middleware.RequireAuth(tokens))
		{
			timeEntries.POST("", timeEntryHandler.Create)
			timeEntries.GET("", timeEntryHandler.List)
			timeEntries.PATCH("/:id", timeEntryHandler.Update)
			timeEntries.DELETE("/:id", timeEntryHandler.Delete)
		}

		// Meeting routes (protected)
		meetings := api.Group("/meetings")
		meetings.Use(middleware.RequireAuth(tokens))
		{
			meetings.POST("", calendarHandler.CreateMeeting)
			meetings.GET("", calendarHandler.ListMeetings)
			meetings.PATCH("/:id", calendarHandler.UpdateMeeting)
			meetings.DELETE("/:id", calendarHandler.DeleteMeeting)
		}

		// Appointment routes (protected)
		appointments := api.Group("/appointments")
		appointments.Use(middleware.RequireAuth(tokens))
		{
			appointments.POST("", calendarHandler.CreateAppointment)
			appointments.GET("", calendarHandler.ListAppointments)
			appointments.PATCH("/:id", calendarHandler.UpdateAppointment)
			appointments.DELETE("/:id", calendarHandler.DeleteAppointment)
		}

		// Settings routes (protected)
		settings := api.Group("/settings")
		settings.Use(middleware.RequireAuth(tokens))
		{
			settings.GET("", settingsHandler.ListSettings)
			settings.PUT("/:key", settingsHandler.UpsertSetting)
			settings.DELETE("/:key", settingsHandler.DeleteSetting)
		}

		// API key routes (protected)
		apiKeys := api.Group("/api-keys")
		apiKeys.Use(middleware.RequireAuth(tokens))
		{
			apiKeys.POST("", settingsHandler.CreateAPIKey)
			apiKeys.GET("", settingsHandler.ListAPIKeys)
			apiKeys.DELETE("/:id", settingsHandler.DeleteAPIKey)
		}

		// AI dispatch (protected)
		ai := api.Group("/ai")
		ai.Use(middleware.RequireAuth(tokens))
		{
			ai.POST("/dispatch", dispatchHandler.Dispatch)
		}
	}

	// Start server
	logger.Info().Str("addr", cfg.Addr).Msg("server starting")
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
