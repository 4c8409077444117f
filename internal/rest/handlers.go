package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/sharesplit/internal/auth"
	"github.com/mmynk/sharesplit/internal/calculator"
	"github.com/mmynk/sharesplit/internal/middleware"
	"github.com/mmynk/sharesplit/internal/report"
	"github.com/mmynk/sharesplit/internal/service"
	"github.com/mmynk/sharesplit/internal/storage"
	"github.com/mmynk/sharesplit/pkg/api"
)

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}

// respondError writes the status and body for a service error.
func respondError(c *gin.Context, err error) {
	if verr, ok := calculator.AsValidation(err); ok {
		c.AbortWithStatusJSON(verr.HTTPStatus(), api.ErrorResponse{Error: verr.Message, Kind: string(verr.Kind)})
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		abortWithError(c, http.StatusNotFound, "not found")
		return
	}

	c.Error(err)
	slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	abortWithError(c, http.StatusInternalServerError, "internal error")
}

func (h *Handler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.SignUp(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		abortWithError(c, http.StatusConflict, err.Error())
		return
	case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.RegisterResponse{User: service.UserToAPI(user), Token: token})
}

func (h *Handler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.LoginResponse{User: service.UserToAPI(user), Token: token})
}

// CreateExpense responds 201 with the new expense ID, or 400 with the
// validation failure.
func (h *Handler) CreateExpense(c *gin.Context) {
	var req api.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	expense, err := h.expenses.Create(ctx, middleware.GetUserID(ctx), service.InputFromAPI(&req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Expense created successfully",
		"id":      expense.ID,
	})
}

func (h *Handler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenses.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.ExpensesToAPI(expenses))
}

func (h *Handler) ListMyExpenses(c *gin.Context) {
	ctx := c.Request.Context()
	expenses, err := h.expenses.ListForUser(ctx, middleware.GetUserID(ctx))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.ExpensesToAPI(expenses))
}

// DownloadBalanceSheet serves the balance sheet as an attachment. The format
// query parameter selects json (default), xlsx or pdf.
func (h *Handler) DownloadBalanceSheet(c *gin.Context) {
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	sheet, err := h.expenses.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := service.BalanceSheetToAPI(sheet)

	var data []byte
	switch format {
	case report.FormatXLSX:
		data, err = report.BuildXLSX(out)
	case report.FormatPDF:
		data, err = report.BuildPDF(out)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+format.Filename(sheet.GeneratedAt)+`"`)
	if data == nil {
		c.JSON(http.StatusOK, out)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), data)
}
