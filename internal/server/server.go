package server

import (
	"fmt"
	"os"

	"github.com/confawards/confawards/config"
	"github.com/confawards/confawards/internal/handlers"
	"github.com/confawards/confawards/internal/middleware"
	"github.com/confawards/confawards/internal/store"
	"github.com/confawards/confawards/internal/workflow"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	svc := workflow.New(store.NewGorm(db))

	r := gin.Default()

	setupRoutes(r, db, svc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, svc *workflow.Service) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.WorkflowMiddleware(svc))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
			eventPublic.GET("/:id/calendar", handlers.ExportEventCalendar)
		}

		awardPublic := public.Group("/awards")
		{
			awardPublic.GET("", handlers.ListAwards)
			awardPublic.GET("/:id", handlers.GetAward)
		}

		speakerPublic := public.Group("/speakers")
		{
			speakerPublic.GET("", handlers.ListSpeakers)
			speakerPublic.GET("/:id", handlers.GetSpeaker)
		}

		public.POST("/inquiries", handlers.CreateInquiry)
	}

	payments := r.Group("/v1/payments")
	payments.Use(middleware.PaymentCallbackMiddleware())
	{
		payments.POST("/callback", handlers.PaymentCallback)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		registrationProtected := protected.Group("/registrations")
		{
			registrationProtected.POST("", handlers.CreateRegistration)
			registrationProtected.GET("/my", handlers.MyRegistrations)
			registrationProtected.GET("/:id/pass", handlers.RegistrationPass)
			registrationProtected.DELETE("/:id", handlers.CancelRegistration)
		}

		nominationProtected := protected.Group("/nominations")
		{
			nominationProtected.POST("", handlers.CreateNomination)
			nominationProtected.GET("/my", handlers.MyNominations)
		}
	}

	admin := r.Group("/v1")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminRequired())
	{
		eventAdmin := admin.Group("/events")
		{
			eventAdmin.POST("", handlers.CreateEvent)
			eventAdmin.PUT("/:id", handlers.UpdateEvent)
			eventAdmin.DELETE("/:id", handlers.DeleteEvent)
			eventAdmin.POST("/:id/advance", handlers.AdvanceEvent)
		}

		awardAdmin := admin.Group("/awards")
		{
			awardAdmin.POST("", handlers.CreateAward)
			awardAdmin.PUT("/:id", handlers.UpdateAward)
			awardAdmin.DELETE("/:id", handlers.DeleteAward)
			awardAdmin.POST("/:id/open", handlers.OpenAward)
			awardAdmin.POST("/:id/close", handlers.CloseAward)
		}

		nominationAdmin := admin.Group("/nominations")
		{
			nominationAdmin.GET("", handlers.ListNominations)
			nominationAdmin.POST("/:id/decide", handlers.DecideNomination)
		}

		admin.GET("/registrations", handlers.ListRegistrations)

		speakerAdmin := admin.Group("/speakers")
		{
			speakerAdmin.POST("", handlers.CreateSpeaker)
			speakerAdmin.PUT("/:id", handlers.UpdateSpeaker)
			speakerAdmin.DELETE("/:id", handlers.DeleteSpeaker)
		}

		inquiryAdmin := admin.Group("/inquiries")
		{
			inquiryAdmin.GET("", handlers.ListInquiries)
			inquiryAdmin.PUT("/:id/status", handlers.UpdateInquiryStatus)
		}

		admin.GET("/stats/overview", handlers.OverviewStats)
	}
}
