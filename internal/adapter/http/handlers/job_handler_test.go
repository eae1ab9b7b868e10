package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"eldercare_billing/internal/adapter/http/handlers/mocks"
	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestJobHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*gin.Engine, *mocks.MockIJobUseCase) {
		uc := mocks.NewMockIJobUseCase(gomock.NewController(t))
		h := NewJobHandler(uc)
		r := gin.New()
		r.POST("/v1/jobs/:name/run", h.Run)
		r.GET("/v1/jobs/:name/last", h.Last)
		return r, uc
	}

	report := entities.JobReport{
		Name:       entities.JobPaymentSync,
		StartedAt:  time.Date(2026, 2, 13, 2, 30, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 2, 13, 2, 31, 0, 0, time.UTC),
		Tenants:    2,
		Processed:  3,
		Succeeded:  2,
		Failed:     1,
	}

	t.Run("run unknown job", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Run(gomock.Any(), entities.JobName("nightly")).Return(entities.JobReport{}, usecase.ErrUnknownJob)

		w := serve(r, http.MethodPost, "/v1/jobs/nightly/run", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("run", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Run(gomock.Any(), entities.JobPaymentSync).Return(report, nil)

		w := serve(r, http.MethodPost, "/v1/jobs/payment-sync/run", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 3, body["processed"])
		assert.EqualValues(t, 1, body["failed"])
	})

	t.Run("run fatal", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Run(gomock.Any(), entities.JobPaymentSync).Return(entities.JobReport{}, errors.New("list tenants: timeout"))

		w := serve(r, http.MethodPost, "/v1/jobs/payment-sync/run", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("last never ran", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Last(gomock.Any(), entities.JobSubscriptionSync).Return(entities.JobReport{}, false, nil)

		w := serve(r, http.MethodGet, "/v1/jobs/subscription-sync/last", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		assert.Equal(t, "JOB_REPORT_NOT_FOUND", errorCode(t, w))
	})

	t.Run("last", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Last(gomock.Any(), entities.JobPaymentSync).Return(report, true, nil)

		w := serve(r, http.MethodGet, "/v1/jobs/payment-sync/last", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
