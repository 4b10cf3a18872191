package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/topics", h.listTopics)
		api.GET("/stats", h.stats)

		api.POST("/attempts", h.startAttempt)
		api.GET("/attempts/:id", h.getAttempt)
		api.GET("/attempts/:id/turns", h.listTurns)
		api.GET("/attempts/:id/summary", h.getSummary)

		api.POST("/attempts/:id/brain-dump", h.submitBrainDump)
		api.POST("/attempts/:id/notes", h.uploadNotes)
		api.POST("/attempts/:id/quiz-answer", h.submitQuizAnswer)
		api.POST("/attempts/:id/opt-out", h.optOut)
	}

	return r
}
