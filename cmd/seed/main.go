// Command seed loads a small set of demo events, awards and speakers so
// a fresh deployment has something to show. It refuses to run against a
// database that already has events.
package main

import (
	"log"
	"time"

	"github.com/confawards/confawards/config"
	"github.com/confawards/confawards/internal/models"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("initialize database: %v", err)
	}

	var existing int64
	if err := db.Model(&models.Event{}).Count(&existing).Error; err != nil {
		log.Fatalf("count events: %v", err)
	}
	if existing > 0 {
		log.Println("Database already seeded, nothing to do")
		return
	}

	seedEvents(db)
	seedAwards(db)
	seedSpeakers(db)

	log.Println("Demo data seeded")
}

func seedEvents(db *gorm.DB) {
	now := time.Now()
	events := []models.Event{
		{
			Title:          "Global Tech Summit 2026",
			Description:    "Three days of talks and workshops on cloud, data and AI.",
			EventType:      "conference",
			StartDate:      now.AddDate(0, 2, 0),
			EndDate:        now.AddDate(0, 2, 3),
			Venue:          "Harbour Convention Centre",
			City:           "Singapore",
			Country:        "Singapore",
			Capacity:       500,
			AvailableSeats: 500,
			TicketPrice:    299,
			IsFeatured:     true,
			Status:         models.EventStatusUpcoming,
		},
		{
			Title:          "Distributed Systems Workshop",
			Description:    "Hands-on workshop covering consensus, replication and failure testing.",
			EventType:      "workshop",
			StartDate:      now.AddDate(0, 1, 0),
			EndDate:        now.AddDate(0, 1, 1),
			Venue:          "Innovation Hub, Level 4",
			City:           "Jakarta",
			Country:        "Indonesia",
			Capacity:       40,
			AvailableSeats: 40,
			TicketPrice:    75,
			Status:         models.EventStatusUpcoming,
		},
		{
			Title:          "Open Source Monthly",
			Description:    "Free community webinar with maintainer AMAs.",
			EventType:      "webinar",
			StartDate:      now.AddDate(0, 0, 14),
			EndDate:        now.AddDate(0, 0, 14),
			Venue:          "Online",
			City:           "Online",
			Country:        "Online",
			Capacity:       1000,
			AvailableSeats: 1000,
			TicketPrice:    0,
			Status:         models.EventStatusUpcoming,
		},
	}
	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			log.Fatalf("seed event %q: %v", events[i].Title, err)
		}
	}
}

func seedAwards(db *gorm.DB) {
	now := time.Now()
	awards := []models.Award{
		{
			Title:           "Engineer of the Year",
			Category:        "individual",
			Description:     "Recognizing outstanding individual engineering contribution.",
			Year:            now.Year(),
			NominationStart: now,
			NominationEnd:   now.AddDate(0, 3, 0),
			Status:          models.AwardStatusOpen,
		},
		{
			Title:           "Best Open Source Project",
			Category:        "project",
			Description:     "For the project with the biggest community impact this year.",
			Year:            now.Year(),
			NominationStart: now.AddDate(0, 1, 0),
			NominationEnd:   now.AddDate(0, 4, 0),
			Status:          models.AwardStatusUpcoming,
		},
	}
	for i := range awards {
		if err := db.Create(&awards[i]).Error; err != nil {
			log.Fatalf("seed award %q: %v", awards[i].Title, err)
		}
	}
}

func seedSpeakers(db *gorm.DB) {
	speakers := []models.Speaker{
		{
			Name:         "Amara Osei",
			Title:        "Principal Engineer",
			Organization: "Northwind Cloud",
			Bio:          "Works on large-scale storage systems and mentors early-career engineers.",
			Expertise:    []string{"storage", "distributed systems"},
			IsFeatured:   true,
		},
		{
			Name:         "Kenji Watanabe",
			Title:        "Staff Developer Advocate",
			Organization: "Gridline Labs",
			Bio:          "Speaks about developer tooling and API design.",
			Expertise:    []string{"developer experience", "APIs"},
		},
	}
	for i := range speakers {
		if err := db.Create(&speakers[i]).Error; err != nil {
			log.Fatalf("seed speaker %q: %v", speakers[i].Name, err)
		}
	}
}
