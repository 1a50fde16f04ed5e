package handler

import (
	"net/http"

	"arjuna.id/healthquest/internal/dto"
	"arjuna.id/healthquest/internal/service"
	"arjuna.id/healthquest/pkg/response"
	"arjuna.id/healthquest/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service service.ProgressionService
}

func NewProfileHandler(service service.ProgressionService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CompleteQuest(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CompleteQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	completion, err := h.service.RecordCompletion(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, completion)
}

func (h *ProfileHandler) GetCompletedQuests(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	history, err := h.service.GetCompletedQuests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
