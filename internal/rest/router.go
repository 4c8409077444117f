// Package rest serves the REST flavour of the API with gin.
package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/mmynk/sharesplit/internal/auth"
	"github.com/mmynk/sharesplit/internal/middleware"
	"github.com/mmynk/sharesplit/internal/service"
)

// Handler holds the services behind the REST routes.
type Handler struct {
	expenses *service.ExpenseService
	auth     *service.AuthService
}

func NewHandler(expenses *service.ExpenseService, authService *service.AuthService) *Handler {
	return &Handler{expenses: expenses, auth: authService}
}

// NewRouter builds the gin engine for all /api routes.
func NewRouter(h *Handler, jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.GinLogger())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)

	expenses := api.Group("/expenses", middleware.GinRequireAuth(jwtManager))
	expenses.POST("", h.CreateExpense)
	expenses.GET("", h.ListExpenses)
	expenses.GET("/my_expenses", h.ListMyExpenses)
	expenses.GET("/download_balance_sheet", h.DownloadBalanceSheet)

	return r
}
