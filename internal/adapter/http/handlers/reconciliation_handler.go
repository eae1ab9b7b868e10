package handlers

import (
	"errors"
	"net/http"

	request "eldercare_billing/internal/adapter/http/dto/request"
	response "eldercare_billing/internal/adapter/http/dto/response"
	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase"
	"eldercare_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ReconciliationHandler serves bank account closings.
type ReconciliationHandler struct {
	usecase usecase.IReconciliationUseCase
	log     zerolog.Logger
}

func NewReconciliationHandler(uc usecase.IReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{usecase: uc, log: logger.WithComponent("reconciliation.handler")}
}

// Create godoc
// @Summary Close a bank account period
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param account_id path string true "Bank account ID"
// @Param body body request.CreateReconciliationRequest true "Closing"
// @Success 201 {object} response.ReconciliationResponse
// @Failure 409 {object} pkg.HTTPError
// @Router /v1/tenants/{tenant_id}/bank-accounts/{account_id}/reconciliations [post]
func (h *ReconciliationHandler) Create(c *gin.Context) {
	var payload request.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, errInvalidRequest.Message, err, http.StatusBadRequest))
		return
	}
	recDate, start, end, err := payload.Dates()
	if err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, err.Error(), err, http.StatusBadRequest))
		return
	}

	rec, err := h.usecase.Create(c.Request.Context(), usecase.CreateReconciliationInput{
		TenantID:           c.Param("tenant_id"),
		BankAccountID:      c.Param("account_id"),
		ReconciliationDate: recDate,
		PeriodStart:        start,
		PeriodEnd:          end,
		OpeningBalance:     payload.OpeningBalance,
		ClosingBalance:     payload.ClosingBalance,
		Notes:              payload.Notes,
	})
	if err != nil {
		writeError(c, h.log, mapReconciliationError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromReconciliation(rec))
}

// List godoc
// @Summary Closings of a bank account
// @Tags reconciliations
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param account_id path string true "Bank account ID"
// @Success 200 {array} response.ReconciliationResponse
// @Router /v1/tenants/{tenant_id}/bank-accounts/{account_id}/reconciliations [get]
func (h *ReconciliationHandler) List(c *gin.Context) {
	recs, err := h.usecase.List(c.Request.Context(), c.Param("tenant_id"), c.Param("account_id"))
	if err != nil {
		writeError(c, h.log, mapReconciliationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromReconciliations(recs))
}

// ListUnreconciled godoc
// @Summary Paid transactions not yet in any closing
// @Tags reconciliations
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param account_id path string true "Bank account ID"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} response.UnreconciledTransactionsResponse
// @Router /v1/tenants/{tenant_id}/bank-accounts/{account_id}/unreconciled-transactions [get]
func (h *ReconciliationHandler) ListUnreconciled(c *gin.Context) {
	var q request.UnreconciledQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, errInvalidRequest.Message, err, http.StatusBadRequest))
		return
	}
	start, end, err := q.Range()
	if err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, err.Error(), err, http.StatusBadRequest))
		return
	}

	out, err := h.usecase.ListUnreconciledPaidTransactions(c.Request.Context(), c.Param("tenant_id"), c.Param("account_id"), start, end)
	if err != nil {
		writeError(c, h.log, mapReconciliationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUnreconciled(out))
}

// Statement godoc
// @Summary Settled movements of a bank account with running balance
// @Tags reconciliations
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param account_id path string true "Bank account ID"
// @Param from_date query string false "YYYY-MM-DD, defaults to today"
// @Param to_date query string false "YYYY-MM-DD, defaults to from_date"
// @Success 200 {object} response.StatementResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Router /v1/tenants/{tenant_id}/bank-accounts/{account_id}/statement [get]
func (h *ReconciliationHandler) Statement(c *gin.Context) {
	var q request.StatementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, errInvalidRequest.Message, err, http.StatusBadRequest))
		return
	}
	from, to, err := q.Range()
	if err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, err.Error(), err, http.StatusBadRequest))
		return
	}

	st, err := h.usecase.Statement(c.Request.Context(), c.Param("tenant_id"), c.Param("account_id"), from, to)
	if err != nil {
		writeError(c, h.log, mapReconciliationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromStatement(st))
}

// Get godoc
// @Summary Get a closing
// @Tags reconciliations
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param id path string true "Reconciliation ID"
// @Success 200 {object} response.ReconciliationResponse
// @Router /v1/tenants/{tenant_id}/reconciliations/{id} [get]
func (h *ReconciliationHandler) Get(c *gin.Context) {
	rec, err := h.usecase.Get(c.Request.Context(), c.Param("tenant_id"), c.Param("id"))
	if err != nil {
		writeError(c, h.log, mapReconciliationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromReconciliation(rec))
}

// UpdateStatus godoc
// @Summary Promote a closing status
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param id path string true "Reconciliation ID"
// @Param body body request.UpdateReconciliationStatusRequest true "Status"
// @Success 200 {object} response.ReconciliationResponse
// @Failure 422 {object} pkg.HTTPError
// @Router /v1/tenants/{tenant_id}/reconciliations/{id}/status [patch]
func (h *ReconciliationHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateReconciliationStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, h.log, pkg.NewDomainError(errInvalidRequest.Code, errInvalidRequest.Message, err, http.StatusBadRequest))
		return
	}
	rec, err := h.usecase.PromoteStatus(c.Request.Context(), c.Param("tenant_id"), c.Param("id"), entities.ReconciliationStatus(payload.Status))
	if err != nil {
		writeError(c, h.log, mapReconciliationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromReconciliation(rec))
}

func mapReconciliationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrBankAccountNotFound):
		return pkg.NewDomainErrorSimple("BANK_ACCOUNT_NOT_FOUND", "Bank account not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrReconciliationNotFound):
		return pkg.NewDomainErrorSimple("RECONCILIATION_NOT_FOUND", "Reconciliation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrReconciliationExists):
		return pkg.NewDomainErrorSimple("RECONCILIATION_ALREADY_EXISTS", "A reconciliation already exists for this account and date", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidReconciliationStatus):
		return pkg.NewDomainError("INVALID_STATUS_TRANSITION", "Reconciliation status does not allow this change", err, http.StatusUnprocessableEntity)
	default:
		return mapCommonError(err)
	}
}
