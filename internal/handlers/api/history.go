package api

import (
	"net/http"

	"github.com/KirkDiggler/secretmafia/internal/services/history"
	"github.com/gin-gonic/gin"
)

func (h *Handler) getHistory(c *gin.Context) {
	records, err := h.historyService.GetHistory(c.Request.Context(), &history.GetHistoryInput{
		DeviceID: deviceIDFrom(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": records})
}

func (h *Handler) getStats(c *gin.Context) {
	stats, err := h.historyService.GetPlayerStats(c.Request.Context(), &history.GetPlayerStatsInput{
		DeviceID: deviceIDFrom(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"players": stats})
}

func (h *Handler) clearHistory(c *gin.Context) {
	if err := h.historyService.ClearHistory(c.Request.Context(), &history.ClearHistoryInput{
		DeviceID: deviceIDFrom(c),
	}); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
