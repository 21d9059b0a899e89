package handlers

import (
	"net/http"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/confawards/confawards/internal/models"
	"github.com/gin-gonic/gin"
)

// OverviewStats returns the aggregate counts shown on the admin
// dashboard.
func OverviewStats(c *gin.Context) {
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var totalEvents, upcomingEvents, totalRegistrations, activeRegistrations int64
	var totalUsers, totalSpeakers, totalAwards, totalNominations int64

	counts := []func() error{
		func() error { return gormDB.Model(&models.Event{}).Count(&totalEvents).Error },
		func() error {
			return gormDB.Model(&models.Event{}).Where("status = ?", models.EventStatusUpcoming).Count(&upcomingEvents).Error
		},
		func() error { return gormDB.Model(&models.Registration{}).Count(&totalRegistrations).Error },
		func() error {
			return gormDB.Model(&models.Registration{}).Where("status = ?", models.RegistrationStatusActive).Count(&activeRegistrations).Error
		},
		func() error { return gormDB.Model(&models.User{}).Count(&totalUsers).Error },
		func() error { return gormDB.Model(&models.Speaker{}).Count(&totalSpeakers).Error },
		func() error { return gormDB.Model(&models.Award{}).Count(&totalAwards).Error },
		func() error { return gormDB.Model(&models.Nomination{}).Count(&totalNominations).Error },
	}
	for _, count := range counts {
		if err := count(); err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing stats.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_events":         totalEvents,
		"upcoming_events":      upcomingEvents,
		"total_registrations":  totalRegistrations,
		"active_registrations": activeRegistrations,
		"total_users":          totalUsers,
		"total_speakers":       totalSpeakers,
		"total_awards":         totalAwards,
		"total_nominations":    totalNominations,
	})
}
