package controllers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"adwiz/internal/models/request_models"
	"adwiz/internal/services"
	"adwiz/pkg/utils"
)

type WizardController struct {
	wizardService services.WizardServiceInterface
}

func NewWizardController(wizardService services.WizardServiceInterface) *WizardController {
	return &WizardController{
		wizardService: wizardService,
	}
}

// POST /api/wizard/sessions
func (wc *WizardController) CreateSessionHandler(c *gin.Context) {
	created, err := wc.wizardService.CreateSession(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, created, "Session created")
}

// GET /api/wizard/sessions/:id
func (wc *WizardController) GetSessionHandler(c *gin.Context) {
	view, err := wc.wizardService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "")
}

// POST /api/wizard/sessions/:id/prompt
func (wc *WizardController) SubmitPromptHandler(c *gin.Context) {
	var req request_models.SubmitPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidInput)
		return
	}

	view, err := wc.wizardService.SubmitPrompt(c.Request.Context(), c.Param("id"), req.Prompt)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "Prompt processed")
}

// PUT /api/wizard/sessions/:id/answers/:index
func (wc *WizardController) SetAnswerHandler(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidAnswerIndex)
		return
	}

	var req request_models.SetAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidInput)
		return
	}

	view, err := wc.wizardService.SetAnswer(c.Request.Context(), c.Param("id"), index, req.Value)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "Answer saved")
}

// POST /api/wizard/sessions/:id/generate
// The body is optional; answers already saved are used when it is absent.
func (wc *WizardController) GenerateHandler(c *gin.Context) {
	var req request_models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.HandleServiceError(c, utils.ErrInvalidInput)
		return
	}

	view, err := wc.wizardService.Generate(c.Request.Context(), c.Param("id"), req.Answers)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "Generation finished")
}

// POST /api/wizard/sessions/:id/reset
func (wc *WizardController) ResetHandler(c *gin.Context) {
	view, err := wc.wizardService.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "Session reset")
}
