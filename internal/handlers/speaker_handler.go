package handlers

import (
	"net/http"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/confawards/confawards/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpeakerRequest struct {
	Name         string   `json:"name" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Organization string   `json:"organization" binding:"required"`
	Bio          string   `json:"bio"`
	Expertise    []string `json:"expertise"`
	ImageURL     string   `json:"image_url"`
	LinkedinURL  string   `json:"linkedin_url"`
	TwitterURL   string   `json:"twitter_url"`
	IsFeatured   bool     `json:"is_featured"`
}

func CreateSpeaker(c *gin.Context) {
	var req SpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	speaker := models.Speaker{
		ID:           uuid.New(),
		Name:         req.Name,
		Title:        req.Title,
		Organization: req.Organization,
		Bio:          req.Bio,
		Expertise:    req.Expertise,
		ImageURL:     req.ImageURL,
		LinkedinURL:  req.LinkedinURL,
		TwitterURL:   req.TwitterURL,
		IsFeatured:   req.IsFeatured,
	}

	if err := gormDB.Create(&speaker).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create speaker.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Speaker created successfully.",
		"speaker": speaker,
	})
}

func GetSpeaker(c *gin.Context) {
	speakerID := c.Param("id")

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var speaker models.Speaker
	if err := gormDB.Where("id = ?", speakerID).First(&speaker).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Speaker not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving speaker.")
		return
	}

	c.JSON(http.StatusOK, speaker)
}

func ListSpeakers(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Speaker{})
	if featured := c.Query("featured"); featured != "" {
		query = query.Where("is_featured = ?", featured == "true")
	}

	var speakers []models.Speaker
	if err := query.Order("name ASC").Find(&speakers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving speakers.")
		return
	}
	if speakers == nil {
		speakers = []models.Speaker{}
	}

	c.JSON(http.StatusOK, speakers)
}

func UpdateSpeaker(c *gin.Context) {
	speakerID := c.Param("id")

	var req SpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var speaker models.Speaker
	if err := gormDB.Where("id = ?", speakerID).First(&speaker).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Speaker not found.")
		return
	}

	speaker.Name = req.Name
	speaker.Title = req.Title
	speaker.Organization = req.Organization
	speaker.Bio = req.Bio
	speaker.Expertise = req.Expertise
	speaker.ImageURL = req.ImageURL
	speaker.LinkedinURL = req.LinkedinURL
	speaker.TwitterURL = req.TwitterURL
	speaker.IsFeatured = req.IsFeatured

	if err := gormDB.Save(&speaker).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update speaker.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Speaker updated successfully.",
		"speaker": speaker,
	})
}

func DeleteSpeaker(c *gin.Context) {
	speakerID := c.Param("id")

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", speakerID).Delete(&models.Speaker{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete speaker.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Speaker not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Speaker deleted successfully.",
	})
}
