package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/audit"
	"github.com/highburybarber/booking-api/internal/cache"
	"github.com/highburybarber/booking-api/internal/config"
	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
	"github.com/highburybarber/booking-api/internal/handlers"
	"github.com/highburybarber/booking-api/internal/middleware"
	"github.com/highburybarber/booking-api/internal/notify"
	"github.com/highburybarber/booking-api/internal/storage"
	ucAppointment "github.com/highburybarber/booking-api/internal/usecase/appointment"
	ucReport "github.com/highburybarber/booking-api/internal/usecase/report"
)

// Dependencies are the shared singletons built in main and threaded into
// the handler graph.
type Dependencies struct {
	Repo     domain.Repository
	Reports  ucReport.Repository
	Cache    *cache.AvailabilityCache
	Notifier *notify.Notifier
	Photos   *storage.PhotoStore
	Audit    *audit.Dispatcher
	Location *time.Location
	Log      zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Dependencies) {

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(deps.Repo, deps.Cache)

	createUC := ucAppointment.NewCreateAppointment(
		deps.Repo,
		availabilityUC,
		deps.Cache,
		deps.Notifier,
		deps.Audit,
		deps.Location,
		cfg.PhonePrefix,
		deps.Log,
	)

	confirmUC := ucAppointment.NewConfirmAppointment(deps.Repo, deps.Audit)

	cancelUC := ucAppointment.NewCancelAppointment(
		deps.Repo,
		deps.Cache,
		deps.Notifier,
		deps.Audit,
		deps.Log,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		deps.Repo,
		deps.Notifier,
		deps.Audit,
		deps.Log,
	)

	reactivateUC := ucAppointment.NewReactivateAppointment(deps.Repo, deps.Cache, deps.Audit)

	listUC := ucAppointment.NewListAppointments(deps.Repo)

	reportUC := ucReport.NewGetReport(deps.Reports)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		confirmUC,
		cancelUC,
		completeUC,
		reactivateUC,
		listUC,
	)
	whatsappHandler := handlers.NewWhatsAppHandler(confirmUC, cancelUC)

	serviceHandler := handlers.NewServiceHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db, deps.Photos)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	blackoutHandler := handlers.NewBlackoutHandler(db, deps.Location)
	holidayHandler := handlers.NewHolidayHandler(db)
	reportHandler := handlers.NewReportHandler(reportUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/disponibilidad", availabilityHandler.Get)
		api.GET("/servicios", serviceHandler.ListPublic)
		api.GET("/empleados", employeeHandler.ListPublic)

		api.POST("/citas", appointmentHandler.Create)
		api.GET("/citas/:id", appointmentHandler.Get)

		// Token link pages (opened from the shop alert message).
		api.GET("/whatsapp/confirmar/:token", whatsappHandler.Confirm)
		api.GET("/whatsapp/cancelar/:token", whatsappHandler.CancelForm)
		api.POST("/whatsapp/cancelar/:token", whatsappHandler.CancelSubmit)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/me", authHandler.Me)
			admin.PATCH("/configuracion", authHandler.UpdateConfig)

			admin.GET("/citas", appointmentHandler.List)
			admin.GET("/citas/:id", appointmentHandler.Get)
			admin.PATCH("/citas/:id/confirmar", appointmentHandler.Confirm)
			admin.PATCH("/citas/:id/cancelar", appointmentHandler.Cancel)
			admin.PATCH("/citas/:id/completar", appointmentHandler.Complete)
			admin.PATCH("/citas/:id/reactivar", appointmentHandler.Reactivate)

			admin.GET("/servicios", serviceHandler.List)
			admin.POST("/servicios", serviceHandler.Create)
			admin.PATCH("/servicios/:id", serviceHandler.Update)
			admin.DELETE("/servicios/:id", serviceHandler.Delete)

			admin.GET("/empleados", employeeHandler.List)
			admin.POST("/empleados", employeeHandler.Create)
			admin.PATCH("/empleados/:id", employeeHandler.Update)
			admin.DELETE("/empleados/:id", employeeHandler.Delete)
			admin.POST("/empleados/:id/foto", employeeHandler.UploadPhoto)

			admin.GET("/horarios", workingHoursHandler.List)
			admin.PUT("/horarios", workingHoursHandler.Upsert)
			admin.DELETE("/horarios/:id", workingHoursHandler.Delete)

			admin.GET("/bloqueos", blackoutHandler.List)
			admin.POST("/bloqueos", blackoutHandler.Create)
			admin.DELETE("/bloqueos/:id", blackoutHandler.Delete)
			admin.DELETE("/bloqueos/vencidos", blackoutHandler.DeleteExpired)

			admin.GET("/dias-festivos", holidayHandler.List)
			admin.POST("/dias-festivos", holidayHandler.Create)
			admin.DELETE("/dias-festivos/:id", holidayHandler.Delete)

			admin.GET("/reportes/diario", reportHandler.Daily)
			admin.GET("/reportes/rango", reportHandler.Range)
			admin.GET("/reportes/exportar", reportHandler.Export)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
