package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adwiz/internal/models/request_models"
	"adwiz/internal/services"
)

type RelayController struct {
	relayService services.RelayServiceInterface
}

func NewRelayController(relayService services.RelayServiceInterface) *RelayController {
	return &RelayController{
		relayService: relayService,
	}
}

// POST /api/openai
// The response is the provider's JSON unchanged, or {"error": "..."}; it is not
// wrapped in the APIResponse envelope.
func (rc *RelayController) ForwardHandler(c *gin.Context) {
	var req request_models.RelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid relay request"})
		return
	}

	body, err := rc.relayService.Forward(c.Request.Context(), req.Endpoint, req.Payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
