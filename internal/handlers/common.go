package handlers

import (
	"net/http"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/confawards/confawards/internal/models"
	"github.com/confawards/confawards/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func requestDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return db.(*gorm.DB), true
}

func requestWorkflow(c *gin.Context) (*workflow.Service, bool) {
	svc, exists := c.Get("workflow")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Workflow service not found.")
		return nil, false
	}
	return svc.(*workflow.Service), true
}

// currentActor assembles the workflow actor from the token identity,
// filling in name and email from the user record.
func currentActor(c *gin.Context, gormDB *gorm.DB) (workflow.Actor, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return workflow.Actor{}, false
	}

	var user models.User
	if err := gormDB.Preload("Role").Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return workflow.Actor{}, false
	}

	return workflow.Actor{
		ID:    user.ID,
		Name:  user.FullName,
		Email: user.Email,
		Role:  user.Role.Name,
	}, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ID format.")
		return uuid.Nil, false
	}
	return id, true
}
