package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	"github.com/luthfirf17/catat-jasamu-api/internal/cache"
	"github.com/luthfirf17/catat-jasamu-api/internal/calendar"
	"github.com/luthfirf17/catat-jasamu-api/internal/config"
	"github.com/luthfirf17/catat-jasamu-api/internal/handlers"
	infraRepo "github.com/luthfirf17/catat-jasamu-api/internal/infra/repository"
	"github.com/luthfirf17/catat-jasamu-api/internal/middleware"
	ucSubmission "github.com/luthfirf17/catat-jasamu-api/internal/usecase/submission"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	auditDispatcher *audit.Dispatcher,
	summaryCache *cache.Cache,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	submissionRepo := infraRepo.NewSubmissionGormRepository(db)
	calendarSyncer := calendar.NewLogSyncer()

	// ======================================================
	// USE CASES — SUBMISSIONS
	// ======================================================
	confirmSubmissionUC := ucSubmission.NewConfirmSubmission(
		submissionRepo,
		auditDispatcher,
		calendarSyncer,
	)

	rejectSubmissionUC := ucSubmission.NewRejectSubmission(
		submissionRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)
	companyHandler := handlers.NewCompanyHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	responsiblePartyHandler := handlers.NewResponsiblePartyHandler(db)

	submissionHandler := handlers.NewSubmissionHandler(
		db,
		confirmSubmissionUC,
		rejectSubmissionUC,
		auditDispatcher,
		summaryCache,
	)

	bookingHandler := handlers.NewBookingHandler(db, auditDispatcher, summaryCache)
	expenseHandler := handlers.NewExpenseHandler(db, auditDispatcher, summaryCache)
	summaryHandler := handlers.NewSummaryHandler(db, summaryCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, auditDispatcher)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PUBLIK (form pengajuan klien)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.POST("/:slug/submissions", publicHandler.CreateSubmission)
			publicAPI.GET("/submissions/:token", publicHandler.GetSubmissionStatus)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVAT (operator)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/company", companyHandler.GetMeCompany)
			secured.PATCH("/me/company", companyHandler.UpdateMeCompany)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/responsible-parties", responsiblePartyHandler.List)
			secured.POST("/me/responsible-parties", responsiblePartyHandler.Create)
			secured.PATCH("/me/responsible-parties/:id", responsiblePartyHandler.Update)
			secured.DELETE("/me/responsible-parties/:id", responsiblePartyHandler.Delete)

			// ------------------------------
			// SUBMISSIONS
			// ------------------------------
			secured.GET("/me/submissions", submissionHandler.List)
			secured.GET("/me/submissions/:id", submissionHandler.Get)
			secured.POST("/me/submissions/:id/preview-totals", submissionHandler.PreviewTotals)
			secured.POST("/me/submissions/:id/confirm", submissionHandler.Confirm)
			secured.POST("/me/submissions/:id/reject", submissionHandler.Reject)
			secured.DELETE("/me/submissions/:id", submissionHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.GET("/me/bookings/:id", bookingHandler.Get)
			secured.POST("/me/bookings/:id/payments", bookingHandler.RecordPayment)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)

			// ------------------------------
			// EXPENSES & KEUANGAN
			// ------------------------------
			secured.GET("/me/expenses", expenseHandler.List)
			secured.POST("/me/expenses", expenseHandler.Create)
			secured.PATCH("/me/expenses/:id", expenseHandler.Update)
			secured.DELETE("/me/expenses/:id", expenseHandler.Delete)

			secured.GET("/me/summary", summaryHandler.Monthly)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
