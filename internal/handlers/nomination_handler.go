package handlers

import (
	"net/http"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/confawards/confawards/internal/models"
	"github.com/confawards/confawards/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NominationRequest struct {
	AwardID             uuid.UUID `json:"award_id" binding:"required"`
	NomineeName         string    `json:"nominee_name" binding:"required"`
	NomineeEmail        string    `json:"nominee_email" binding:"required,email"`
	NomineeOrganization string    `json:"nominee_organization"`
	NominationStatement string    `json:"nomination_statement" binding:"required"`
}

func CreateNomination(c *gin.Context) {
	var req NominationRequest
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

	nomination, err := svc.SubmitNomination(c.Request.Context(), workflow.NominationInput{
		AwardID:             req.AwardID,
		NomineeName:         req.NomineeName,
		NomineeEmail:        req.NomineeEmail,
		NomineeOrganization: req.NomineeOrganization,
		NominationStatement: req.NominationStatement,
	}, actor)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Nomination submitted.",
		"nomination": nomination,
	})
}

func MyNominations(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var nominations []models.Nomination
	if err := gormDB.Where("submitter_id = ?", userID).Order("created_at DESC").Find(&nominations).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving nominations.")
		return
	}
	if nominations == nil {
		nominations = []models.Nomination{}
	}

	c.JSON(http.StatusOK, nominations)
}

func ListNominations(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Nomination{})
	if awardID := c.Query("award_id"); awardID != "" {
		query = query.Where("award_id = ?", awardID)
	}
	if nominationStatus := c.Query("status"); nominationStatus != "" {
		query = query.Where("status = ?", nominationStatus)
	}

	var nominations []models.Nomination
	if err := query.Order("created_at DESC").Find(&nominations).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving nominations.")
		return
	}
	if nominations == nil {
		nominations = []models.Nomination{}
	}

	c.JSON(http.StatusOK, nominations)
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject declare_winner"`
}

func DecideNomination(c *gin.Context) {
	nominationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Decision must be approve, reject or declare_winner.")
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

	nomination, err := svc.DecideNomination(c.Request.Context(), nominationID, req.Decision, actor)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Decision recorded.",
		"nomination": nomination,
	})
}
