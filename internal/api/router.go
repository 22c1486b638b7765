package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adwiz/internal/api/controllers"
	"adwiz/pkg/middleware"
	"adwiz/pkg/utils"
)

// NewEngine returns a gin engine with the middleware every entrypoint shares.
func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func RegisterRelayRoutes(r *gin.Engine, relayController *controllers.RelayController) {
	r.POST("/api/openai", relayController.ForwardHandler)
}

func RegisterWizardRoutes(r *gin.Engine,
	wizardController *controllers.WizardController,
	tokens *utils.SessionTokens) {

	sessions := r.Group("/api/wizard/sessions")
	sessions.POST("", wizardController.CreateSessionHandler)

	session := sessions.Group("/:id", middleware.SessionAuthMiddleware(tokens))
	session.GET("", wizardController.GetSessionHandler)
	session.POST("/prompt", wizardController.SubmitPromptHandler)
	session.PUT("/answers/:index", wizardController.SetAnswerHandler)
	session.POST("/generate", wizardController.GenerateHandler)
	session.POST("/reset", wizardController.ResetHandler)
}
