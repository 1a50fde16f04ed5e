package handler

import (
	"net/http"

	"arjuna.id/healthquest/internal/service"
	"arjuna.id/healthquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuestHandler struct {
	service service.QuestService
}

func NewQuestHandler(service service.QuestService) *QuestHandler {
	return &QuestHandler{service: service}
}

func (h *QuestHandler) GetAllQuests(c *gin.Context) {
	quests, err := h.service.GetAllQuests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, quests)
}

func (h *QuestHandler) GetQuestByID(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}

	quest, err := h.service.GetQuestByID(c.Request.Context(), questID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, quest)
}
