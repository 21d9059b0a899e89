package handlers

import (
	"net/http"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/confawards/confawards/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type RegistrationRequest struct {
	EventID    uuid.UUID `json:"event_id" binding:"required"`
	TicketType string    `json:"ticket_type"`
}

func CreateRegistration(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c, gormDB)
	if !ok {
		return
	}
	svc, ok := requestWorkflow(c)
	if !ok {
		return
	}

	registration, err := svc.RegisterForEvent(c.Request.Context(), req.EventID, actor, req.TicketType)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registered successfully.",
		"registration": registration,
	})
}

func MyRegistrations(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var registrations []models.Registration
	if err := gormDB.Where("user_id = ?", userID).Order("created_at DESC").Find(&registrations).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving registrations.")
		return
	}
	if registrations == nil {
		registrations = []models.Registration{}
	}

	c.JSON(http.StatusOK, registrations)
}

func ListRegistrations(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Registration{})
	if eventID := c.Query("event_id"); eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	var registrations []models.Registration
	if err := query.Order("created_at DESC").Find(&registrations).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving registrations.")
		return
	}
	if registrations == nil {
		registrations = []models.Registration{}
	}

	c.JSON(http.StatusOK, registrations)
}

func CancelRegistration(c *gin.Context) {
	registrationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c, gormDB)
	if !ok {
		return
	}
	svc, ok := requestWorkflow(c)
	if !ok {
		return
	}

	if err := svc.CancelRegistration(c.Request.Context(), registrationID, actor); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration cancelled.",
	})
}

// RegistrationPass renders the signed entry pass as a QR PNG.
func RegistrationPass(c *gin.Context) {
	registrationID := c.Param("id")

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var registration models.Registration
	if err := gormDB.Where("id = ?", registrationID).First(&registration).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
		return
	}

	if c.GetString("role") != models.RoleAdmin && registration.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this pass.")
		return
	}
	if registration.Status != models.RegistrationStatusActive {
		helpers.RespondWithError(c, http.StatusUnprocessableEntity, "Registration is cancelled.")
		return
	}

	png, err := qrcode.Encode(helpers.PassData(&registration), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate pass.")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
