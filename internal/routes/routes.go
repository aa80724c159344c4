package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vidalapps/salon-manager/internal/audit"
	"github.com/vidalapps/salon-manager/internal/config"
	"github.com/vidalapps/salon-manager/internal/handlers"
	infraRepo "github.com/vidalapps/salon-manager/internal/infra/repository"
	"github.com/vidalapps/salon-manager/internal/middleware"
	"github.com/vidalapps/salon-manager/internal/session"
	ucAuth "github.com/vidalapps/salon-manager/internal/usecase/auth"
	ucSchedule "github.com/vidalapps/salon-manager/internal/usecase/schedule"
)

// RegisterRoutes monta toda a árvore de dependências na partida.
// Nada aqui é singleton de processo: tudo entra por construtor.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	store session.Store,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	clientRepo := infraRepo.NewClientbookGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	sessions := session.NewManager(store, cfg.SecretKey, cfg.SessionTTL, cfg.RememberTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	registerUC := ucAuth.NewRegisterAccount(accountRepo, auditDispatcher, cfg.VerifyEmailDomain)
	loginUC := ucAuth.NewLoginAccount(accountRepo, auditDispatcher)

	bookUC := ucSchedule.NewBookAppointment(scheduleRepo, auditDispatcher)
	completeUC := ucSchedule.NewCompleteAppointment(scheduleRepo, auditDispatcher)
	cancelUC := ucSchedule.NewCancelAppointment(scheduleRepo, auditDispatcher)
	noShowUC := ucSchedule.NewMarkNoShow(scheduleRepo, auditDispatcher)
	listByDateUC := ucSchedule.NewListAppointmentsByDate(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, accountRepo, sessions)
	dashboardHandler := handlers.NewDashboardHandler(listByDateUC)
	serviceHandler := handlers.NewServiceHandler(catalogRepo, auditDispatcher)
	clientHandler := handlers.NewClientHandler(clientRepo, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		completeUC,
		cancelUC,
		noShowUC,
		listByDateUC,
		clientRepo,
		catalogRepo,
	)

	// ======================================================
	// ROTAS PÚBLICAS
	// ======================================================
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)

	// ======================================================
	// ROTAS PROTEGIDAS
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.RequireSession(sessions, accountRepo))
	{
		secured.GET("/", dashboardHandler.Dashboard)
		secured.GET("/dashboard", dashboardHandler.Dashboard)
		secured.GET("/logout", authHandler.Logout)

		// ------------------------------
		// SERVICES
		// ------------------------------
		secured.GET("/services", serviceHandler.List)
		secured.GET("/service/new", serviceHandler.NewPage)
		secured.POST("/service/new", serviceHandler.Create)
		secured.GET("/service/:id/edit", serviceHandler.EditPage)
		secured.POST("/service/:id/edit", serviceHandler.Update)
		secured.POST("/service/:id/delete", serviceHandler.Delete)

		// ------------------------------
		// CLIENTS
		// ------------------------------
		secured.GET("/clients", clientHandler.List)
		secured.GET("/client/new", clientHandler.NewPage)
		secured.POST("/client/new", clientHandler.Create)
		secured.GET("/client/:id/edit", clientHandler.EditPage)
		secured.POST("/client/:id/edit", clientHandler.Update)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.GET("/appointments", appointmentHandler.Agenda)
		secured.GET("/appointment/new", appointmentHandler.NewPage)
		secured.POST("/appointment/new", appointmentHandler.Book)
		secured.POST("/appointment/:id/complete", appointmentHandler.Complete)
		secured.POST("/appointment/:id/cancel", appointmentHandler.Cancel)
		secured.POST("/appointment/:id/no-show", appointmentHandler.NoShow)
	}
}
