package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/confawards/confawards/internal/middleware"
	"github.com/confawards/confawards/internal/models"
	"github.com/confawards/confawards/internal/store"
	"github.com/confawards/confawards/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentTestRouter(catalog store.Catalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.WorkflowMiddleware(workflow.New(catalog)))
	payments := r.Group("/v1/payments")
	payments.Use(middleware.PaymentCallbackMiddleware())
	payments.POST("/callback", PaymentCallback)
	return r
}

func postCallback(r *gin.Engine, token string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/callback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Callback-Token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentCallback(t *testing.T) {
	t.Setenv("PAYMENT_CALLBACK_TOKEN", "cb-secret")

	catalog := store.NewMemory()
	registration := &models.Registration{
		EventID:       uuid.New(),
		UserID:        uuid.New(),
		UserName:      "Dana Attendee",
		UserEmail:     "dana@example.com",
		TicketType:    "standard",
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.RegistrationStatusActive,
	}
	require.NoError(t, catalog.CreateRegistration(context.Background(), registration))

	r := paymentTestRouter(catalog)
	w := postCallback(r, "cb-secret", gin.H{
		"registration_id": registration.ID,
		"status":          models.PaymentStatusCompleted,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := catalog.GetRegistration(context.Background(), registration.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, stored.PaymentStatus)
}

func TestPaymentCallbackRejectsBadToken(t *testing.T) {
	t.Setenv("PAYMENT_CALLBACK_TOKEN", "cb-secret")

	r := paymentTestRouter(store.NewMemory())

	w := postCallback(r, "wrong", gin.H{
		"registration_id": uuid.New(),
		"status":          models.PaymentStatusCompleted,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postCallback(r, "", gin.H{
		"registration_id": uuid.New(),
		"status":          models.PaymentStatusCompleted,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentCallbackUnconfigured(t *testing.T) {
	t.Setenv("PAYMENT_CALLBACK_TOKEN", "")

	r := paymentTestRouter(store.NewMemory())
	w := postCallback(r, "anything", gin.H{
		"registration_id": uuid.New(),
		"status":          models.PaymentStatusCompleted,
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPaymentCallbackUnknownRegistration(t *testing.T) {
	t.Setenv("PAYMENT_CALLBACK_TOKEN", "cb-secret")

	r := paymentTestRouter(store.NewMemory())
	w := postCallback(r, "cb-secret", gin.H{
		"registration_id": uuid.New(),
		"status":          models.PaymentStatusCompleted,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentCallbackRejectsBadPayload(t *testing.T) {
	t.Setenv("PAYMENT_CALLBACK_TOKEN", "cb-secret")

	r := paymentTestRouter(store.NewMemory())

	w := postCallback(r, "cb-secret", gin.H{
		"registration_id": uuid.New(),
		"status":          "refunded",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postCallback(r, "cb-secret", gin.H{"status": models.PaymentStatusCompleted})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
