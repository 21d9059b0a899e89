package handlers

import (
	"fmt"
	"net/http"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/confawards/confawards/internal/helpers"
	"github.com/confawards/confawards/internal/models"
)

// ExportEventCalendar renders an event as an iCalendar document so
// attendees can add it to their own calendars.
func ExportEventCalendar(c *gin.Context) {
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

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Confawards//confawards//EN")

	icalEvent := cal.AddEvent(event.ID.String())
	icalEvent.SetSummary(event.Title)
	icalEvent.SetStartAt(event.StartDate)
	icalEvent.SetEndAt(event.EndDate)
	icalEvent.SetDescription(event.Description)
	icalEvent.SetLocation(fmt.Sprintf("%s, %s, %s", event.Venue, event.City, event.Country))

	c.JSON(http.StatusOK, gin.H{
		"calendar_data": cal.Serialize(),
		"filename":      strings.ReplaceAll(event.Title, " ", "_") + ".ics",
	})
}
