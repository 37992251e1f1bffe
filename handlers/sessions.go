package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomhub/services"
)

type SessionAdminHandler struct {
	sweeper *services.SessionSweeper
}

func NewSessionAdminHandler(sweeper *services.SessionSweeper) *SessionAdminHandler {
	return &SessionAdminHandler{sweeper: sweeper}
}

func (h *SessionAdminHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  h.sweeper.CacheStats(),
	})
}

func (h *SessionAdminHandler) Sweep(c *gin.Context) {
	removed := h.sweeper.Sweep()
	c.JSON(http.StatusOK, gin.H{
		"status":  "swept",
		"removed": removed,
	})
}
