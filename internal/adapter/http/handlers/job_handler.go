package handlers

import (
	"errors"
	"net/http"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase"
	"eldercare_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// JobHandler triggers drift-correction jobs and reads their last report.
type JobHandler struct {
	usecase usecase.IJobUseCase
	log     zerolog.Logger
}

func NewJobHandler(uc usecase.IJobUseCase) *JobHandler {
	return &JobHandler{usecase: uc, log: logger.WithComponent("jobs.handler")}
}

// Run godoc
// @Summary Run a job now
// @Tags jobs
// @Produce json
// @Param name path string true "subscription-sync, payment-sync or invoice-generation"
// @Success 200 {object} entities.JobReport
// @Failure 404 {object} pkg.HTTPError
// @Router /v1/jobs/{name}/run [post]
func (h *JobHandler) Run(c *gin.Context) {
	report, err := h.usecase.Run(c.Request.Context(), entities.JobName(c.Param("name")))
	if err != nil {
		writeError(c, h.log, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, report)
}

// Last godoc
// @Summary Last report of a job
// @Tags jobs
// @Produce json
// @Param name path string true "Job name"
// @Success 200 {object} entities.JobReport
// @Failure 404 {object} pkg.HTTPError
// @Router /v1/jobs/{name}/last [get]
func (h *JobHandler) Last(c *gin.Context) {
	report, found, err := h.usecase.Last(c.Request.Context(), entities.JobName(c.Param("name")))
	if err != nil {
		writeError(c, h.log, mapJobError(err))
		return
	}
	if !found {
		appErr := pkg.NewDomainErrorSimple("JOB_REPORT_NOT_FOUND", "Job has no stored report", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, report)
}

func mapJobError(err error) *pkg.AppError {
	if errors.Is(err, usecase.ErrUnknownJob) {
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
