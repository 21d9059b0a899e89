package handlers

import (
	"net/http"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentCallbackRequest struct {
	RegistrationID uuid.UUID `json:"registration_id" binding:"required"`
	Status         string    `json:"status" binding:"required,oneof=pending completed failed"`
}

// PaymentCallback receives payment outcomes from the external payment
// collaborator. The callback token middleware has already authenticated
// the caller by the time this runs.
func PaymentCallback(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid callback payload.")
		return
	}

	svc, ok := requestWorkflow(c)
	if !ok {
		return
	}

	registration, err := svc.SetPaymentStatus(c.Request.Context(), req.RegistrationID, req.Status)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Payment status recorded.",
		"registration": registration,
	})
}
