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

type EventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Venue       string    `json:"venue" binding:"required"`
	City        string    `json:"city" binding:"required"`
	Country     string    `json:"country" binding:"required"`
	Capacity    *int      `json:"capacity" binding:"required,min=0"`
	TicketPrice float64   `json:"ticket_price" binding:"min=0"`
	ImageURL    string    `json:"image_url"`
	Agenda      string    `json:"agenda"`
	IsFeatured  bool      `json:"is_featured"`
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if !req.EndDate.After(req.StartDate) {
		helpers.RespondWithError(c, http.StatusBadRequest, "End date must be after start date.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	event := models.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Venue:       req.Venue,
		City:        req.City,
		Country:     req.Country,
		Capacity:    *req.Capacity,
		// A new event starts with every seat available.
		AvailableSeats: *req.Capacity,
		TicketPrice:    req.TicketPrice,
		ImageURL:       req.ImageURL,
		Agenda:         req.Agenda,
		IsFeatured:     req.IsFeatured,
		Status:         models.EventStatusUpcoming,
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	event.Status = status.EffectiveEvent(&event, time.Now())
	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	pageNum, err := helpers.StringToInt(page)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.StringToInt(limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Event{})
	if eventStatus := c.Query("status"); eventStatus != "" {
		query = query.Where("status = ?", eventStatus)
	}
	if featured := c.Query("featured"); featured != "" {
		query = query.Where("is_featured = ?", featured == "true")
	}

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("start_date DESC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	now := time.Now()
	for i := range events {
		events[i].Status = status.EffectiveEvent(&events[i], now)
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	// Capacity is immutable after creation and seats belong to the
	// ledger, so only descriptive fields are written here.
	if *req.Capacity != event.Capacity {
		helpers.RespondWithError(c, http.StatusUnprocessableEntity, "Capacity cannot be changed after creation.")
		return
	}

	updates := map[string]any{
		"title":        req.Title,
		"description":  req.Description,
		"event_type":   req.EventType,
		"start_date":   req.StartDate,
		"end_date":     req.EndDate,
		"venue":        req.Venue,
		"city":         req.City,
		"country":      req.Country,
		"ticket_price": req.TicketPrice,
		"image_url":    req.ImageURL,
		"agenda":       req.Agenda,
		"is_featured":  req.IsFeatured,
	}
	if err := gormDB.Model(&event).Updates(updates).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")

	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", eventID).Delete(&models.Event{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}

type AdvanceEventRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdvanceEvent lets an administrator force an event's lifecycle
// forward (never backwards) ahead of the wall clock.
func AdvanceEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdvanceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	svc, ok := requestWorkflow(c)
	if !ok {
		return
	}

	event, err := svc.AdvanceEvent(c.Request.Context(), eventID, req.Status)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event status advanced.",
		"event":   event,
	})
}
