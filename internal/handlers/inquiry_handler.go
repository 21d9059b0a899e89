package handlers

import (
	"net/http"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/confawards/confawards/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func CreateInquiry(c *gin.Context) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	inquiry := models.Inquiry{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.InquiryStatusNew,
	}

	if err := gormDB.Create(&inquiry).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to submit inquiry.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inquiry submitted. We'll get back to you soon.",
		"inquiry": inquiry,
	})
}

func ListInquiries(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Inquiry{})
	if inquiryStatus := c.Query("status"); inquiryStatus != "" {
		query = query.Where("status = ?", inquiryStatus)
	}

	var inquiries []models.Inquiry
	if err := query.Order("created_at DESC").Find(&inquiries).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving inquiries.")
		return
	}
	if inquiries == nil {
		inquiries = []models.Inquiry{}
	}

	c.JSON(http.StatusOK, inquiries)
}

type InquiryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new in_progress resolved"`
}

func UpdateInquiryStatus(c *gin.Context) {
	inquiryID := c.Param("id")

	var req InquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Status must be new, in_progress or resolved.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var inquiry models.Inquiry
	if err := gormDB.Where("id = ?", inquiryID).First(&inquiry).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Inquiry not found.")
		return
	}

	inquiry.Status = req.Status
	if err := gormDB.Save(&inquiry).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update inquiry.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inquiry updated.",
		"inquiry": inquiry,
	})
}
