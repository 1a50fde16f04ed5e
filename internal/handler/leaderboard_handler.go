package handler

import (
	"net/http"

	"arjuna.id/healthquest/internal/service"
	"arjuna.id/healthquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
}

func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetGlobalRanking(c *gin.Context) {
	ranking, err := h.service.GetGlobalRanking(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ranking)
}

func (h *LeaderboardHandler) GetUserRank(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	entry, err := h.service.GetRankFor(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}
