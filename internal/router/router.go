package router

import (
	"github.com/pjoao4446/plataformapessoal-sub001/internal/config"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/handler"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/middleware"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/models"
	"github.com/pjoao4446/plataformapessoal-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and mounts the API.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	util.RegisterValidations()

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/auth/logout", authHandler.Logout)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	logHandler := handler.NewLogHandler(db, cfg.App.PageSize)
	protected.GET("/logs", logHandler.ListLogs)

	importExportHandler := handler.NewImportExportHandler(db)
	protected.GET("/export/csv", importExportHandler.ExportCSV)
	protected.GET("/export/xlsx", importExportHandler.ExportXLSX)

	fin := protected.Group("/financial")

	categoryHandler := handler.NewCategoryHandler(db)
	fin.POST("/categories", categoryHandler.Create)
	fin.GET("/categories", categoryHandler.List)
	fin.PUT("/categories/:id", categoryHandler.Update)
	fin.DELETE("/categories/:id", categoryHandler.Delete)

	accountHandler := handler.NewAccountHandler(db)
	fin.POST("/accounts", accountHandler.Create)
	fin.GET("/accounts", accountHandler.List)
	fin.PUT("/accounts/:id", accountHandler.Update)
	fin.DELETE("/accounts/:id", accountHandler.Delete)

	creditCardHandler := handler.NewCreditCardHandler(db)
	fin.POST("/credit-cards", creditCardHandler.Create)
	fin.GET("/credit-cards", creditCardHandler.List)
	fin.PUT("/credit-cards/:id", creditCardHandler.Update)
	fin.DELETE("/credit-cards/:id", creditCardHandler.Delete)

	expenseHandler := handler.NewEntryHandler(db, models.CategoryExpense)
	fin.POST("/expenses", expenseHandler.Create)
	fin.GET("/expenses", expenseHandler.List)
	fin.PUT("/expenses/:id", expenseHandler.Update)
	fin.DELETE("/expenses/:id", expenseHandler.Delete)

	revenueHandler := handler.NewEntryHandler(db, models.CategoryRevenue)
	fin.POST("/revenues", revenueHandler.Create)
	fin.GET("/revenues", revenueHandler.List)
	fin.PUT("/revenues/:id", revenueHandler.Update)
	fin.DELETE("/revenues/:id", revenueHandler.Delete)

	recurringExpense := handler.NewRecurringHandler(db, models.CategoryExpense)
	fin.POST("/recurring-expenses", recurringExpense.Create)
	fin.GET("/recurring-expenses", recurringExpense.List)
	fin.PUT("/recurring-expenses/:id", recurringExpense.Update)
	fin.DELETE("/recurring-expenses/:id", recurringExpense.Delete)
	fin.GET("/recurring-expenses/status/:year/:month", recurringExpense.MonthStatus)
	fin.POST("/recurring-expenses/:id/mark-paid", recurringExpense.MarkDone)
	fin.POST("/recurring-expenses/:id/skip", recurringExpense.Skip)

	recurringRevenue := handler.NewRecurringHandler(db, models.CategoryRevenue)
	fin.POST("/recurring-revenues", recurringRevenue.Create)
	fin.GET("/recurring-revenues", recurringRevenue.List)
	fin.PUT("/recurring-revenues/:id", recurringRevenue.Update)
	fin.DELETE("/recurring-revenues/:id", recurringRevenue.Delete)
	fin.GET("/recurring-revenues/status/:year/:month", recurringRevenue.MonthStatus)
	fin.POST("/recurring-revenues/:id/mark-received", recurringRevenue.MarkDone)
	fin.POST("/recurring-revenues/:id/skip", recurringRevenue.Skip)

	transactionHandler := handler.NewTransactionHandler(db)
	fin.POST("/transactions", transactionHandler.Create)
	fin.GET("/transactions", transactionHandler.List)
	fin.PUT("/transactions/:id", transactionHandler.Update)
	fin.DELETE("/transactions/:id", transactionHandler.Delete)

	opportunityHandler := handler.NewOpportunityHandler(db)
	fin.POST("/opportunities", opportunityHandler.Create)
	fin.GET("/opportunities", opportunityHandler.List)
	fin.PUT("/opportunities/:id", opportunityHandler.Update)
	fin.DELETE("/opportunities/:id", opportunityHandler.Delete)

	goalHandler := handler.NewGoalHandler(db)
	fin.POST("/goals", goalHandler.Create)
	fin.GET("/goals", goalHandler.List)
	fin.PUT("/goals/:id", goalHandler.Update)
	fin.DELETE("/goals/:id", goalHandler.Delete)

	patrimonyHandler := handler.NewPatrimonyHandler(db)
	fin.POST("/patrimony", patrimonyHandler.Create)
	fin.GET("/patrimony", patrimonyHandler.List)
	fin.PUT("/patrimony/:id", patrimonyHandler.Update)
	fin.DELETE("/patrimony/:id", patrimonyHandler.Delete)

	dashboardHandler := handler.NewDashboardHandler(db)
	fin.GET("/dashboard/monthly", dashboardHandler.Monthly)

	return r
}
