package middleware

import (
	"github.com/confawards/confawards/internal/workflow"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func WorkflowMiddleware(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("workflow", svc)
		c.Next()
	}
}

func GetWorkflow(c *gin.Context) *workflow.Service {
	svc, exists := c.Get("workflow")
	if !exists {
		return nil
	}
	return svc.(*workflow.Service)
}
