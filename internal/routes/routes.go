package routes

import (
	"github.com/gin-gonic/gin"

	"vetscribe-server/internal/config"
	"vetscribe-server/internal/handlers"
	"vetscribe-server/internal/middleware"
	"vetscribe-server/internal/scribe"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, svc *scribe.Service, stt handlers.Transcriber, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	appointmentHandler := handlers.NewAppointmentHandler(svc, cfg)
	patientHandler := handlers.NewPatientHandler(svc)
	transcriptionHandler := handlers.NewTranscriptionHandler(stt)
	exportHandler := handlers.NewExportHandler(svc)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.GET("/dashboard", appointmentHandler.GetDashboard)

		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			// Follow-up mutations; each one regenerates and overwrites
			appointmentRoutes.POST("/:id/email", appointmentHandler.GenerateClientEmail)
			appointmentRoutes.POST("/:id/dental-chart", appointmentHandler.GenerateDentalChart)

			// Download artifacts
			appointmentRoutes.GET("/:id/export/soap", exportHandler.DownloadSOAP)
			appointmentRoutes.GET("/:id/export/summary", exportHandler.DownloadSummary)
			appointmentRoutes.GET("/:id/export/email", exportHandler.DownloadEmail)
			appointmentRoutes.GET("/:id/export/pdf", exportHandler.DownloadPDF)
		}

		private.GET("/patients", patientHandler.GetPatients)

		private.POST("/transcriptions", transcriptionHandler.Transcribe)

		private.GET("/export", exportHandler.ExportData)
		private.POST("/import", exportHandler.ImportData)
		private.DELETE("/data", exportHandler.ClearData)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
