package handlers

import (
	"net/http"
	"time"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/confawards/confawards/internal/models"
	"github.com/confawards/confawards/internal/status"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AwardRequest struct {
	Title           string    `json:"title" binding:"required"`
	Category        string    `json:"category" binding:"required"`
	Description     string    `json:"description"`
	Year            int       `json:"year" binding:"required"`
	NominationStart time.Time `json:"nomination_start"`
	NominationEnd   time.Time `json:"nomination_end"`
}

func CreateAward(c *gin.Context) {
	var req AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	award := models.Award{
		ID:              uuid.New(),
		Title:           req.Title,
		Category:        req.Category,
		Description:     req.Description,
		Year:            req.Year,
		NominationStart: req.NominationStart,
		NominationEnd:   req.NominationEnd,
		Status:          models.AwardStatusUpcoming,
	}

	if err := gormDB.Create(&award).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create award.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Award created successfully.",
		"award":   award,
	})
}

func GetAward(c *gin.Context) {
	awardID := c.Param("id")

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var award models.Award
	if err := gormDB.Where("id = ?", awardID).First(&award).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Award not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving award.")
		return
	}

	award.Status = status.EffectiveAward(&award, time.Now())
	c.JSON(http.StatusOK, award)
}

func ListAwards(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Award{})
	if awardStatus := c.Query("status"); awardStatus != "" {
		query = query.Where("status = ?", awardStatus)
	}
	if year := c.Query("year"); year != "" {
		yearNum, err := helpers.StringToInt(year)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid year.")
			return
		}
		query = query.Where("year = ?", yearNum)
	}

	var awards []models.Award
	if err := query.Order("year DESC").Find(&awards).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving awards.")
		return
	}

	now := time.Now()
	for i := range awards {
		awards[i].Status = status.EffectiveAward(&awards[i], now)
	}
	if awards == nil {
		awards = []models.Award{}
	}

	c.JSON(http.StatusOK, awards)
}

func UpdateAward(c *gin.Context) {
	awardID := c.Param("id")

	var req AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var award models.Award
	if err := gormDB.Where("id = ?", awardID).First(&award).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Award not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding award.")
		return
	}

	// Status and winner are owned by the lifecycle endpoints; only the
	// descriptive fields are written here.
	updates := map[string]any{
		"title":            req.Title,
		"category":         req.Category,
		"description":      req.Description,
		"year":             req.Year,
		"nomination_start": req.NominationStart,
		"nomination_end":   req.NominationEnd,
	}
	if err := gormDB.Model(&award).Updates(updates).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update award.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Award updated successfully.",
		"award":   award,
	})
}

func DeleteAward(c *gin.Context) {
	awardID := c.Param("id")

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", awardID).Delete(&models.Award{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete award.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Award not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Award deleted successfully.",
	})
}

// OpenAward opens the nomination window.
func OpenAward(c *gin.Context) {
	awardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := requestWorkflow(c)
	if !ok {
		return
	}

	award, err := svc.OpenAward(c.Request.Context(), awardID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Nominations are now open.",
		"award":   award,
	})
}

// CloseAward closes the nomination window explicitly.
func CloseAward(c *gin.Context) {
	awardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := requestWorkflow(c)
	if !ok {
		return
	}

	award, err := svc.CloseAward(c.Request.Context(), awardID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Nominations are now closed.",
		"award":   award,
	})
}
