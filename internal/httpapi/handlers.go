// Package httpapi is the thin HTTP shell over the session orchestrator. It
// does request decoding, error-to-status mapping, and metrics; all sequencing
// logic lives in internal/session.
package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/session"
)

// Handler serves the recall API.
type Handler struct {
	svc *session.Service
	log *zap.Logger
}

// NewHandler creates a Handler around the orchestrator.
func NewHandler(svc *session.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type attemptDTO struct {
	ID               string    `json:"id"`
	TopicID          string    `json:"topic_id"`
	StudentName      string    `json:"student_name"`
	Mode             string    `json:"mode"`
	Status           string    `json:"status"`
	TurnCount        int       `json:"turn_count"`
	CorrectFollowups int       `json:"correct_followups"`
	Demonstrated     []string  `json:"demonstrated_concepts"`
	Missing          []string  `json:"missing_concepts"`
	Misconceptions   []string  `json:"misconceptions"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toAttemptDTO(a *attempt.Attempt) attemptDTO {
	return attemptDTO{
		ID:               a.ID,
		TopicID:          a.TopicID,
		StudentName:      a.StudentName,
		Mode:             string(a.Mode),
		Status:           string(a.Status),
		TurnCount:        a.TurnCount,
		CorrectFollowups: a.CorrectFollowups,
		Demonstrated:     a.Demonstrated.Values(),
		Missing:          a.Missing.Values(),
		Misconceptions:   a.Misconceptions.Values(),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

type startAttemptRequest struct {
	TopicID     string `json:"topic_id" binding:"required"`
	Mode        string `json:"mode" binding:"required"`
	StudentName string `json:"student_name"`
}

func (h *Handler) startAttempt(c *gin.Context) {
	var req startAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{Message: err.Error(), Code: "bad_request"}})
		return
	}

	a, err := h.svc.StartAttempt(c.Request.Context(), req.TopicID, req.Mode, req.StudentName)
	if err != nil {
		respondError(c, err)
		return
	}

	attemptsStarted.WithLabelValues(req.Mode).Inc()
	c.JSON(http.StatusCreated, toAttemptDTO(a))
}

func (h *Handler) getAttempt(c *gin.Context) {
	a, err := h.svc.GetAttempt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttemptDTO(a))
}

func (h *Handler) listTurns(c *gin.Context) {
	turns, err := h.svc.ListTurns(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turns": turns})
}

type textSubmission struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) submitBrainDump(c *gin.Context) {
	var req textSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{Message: err.Error(), Code: "bad_request"}})
		return
	}

	start := time.Now()
	res, err := h.svc.SubmitBrainDump(c.Request.Context(), c.Param("id"), req.Text)
	stepDuration.WithLabelValues("brain_dump").Observe(time.Since(start).Seconds())
	if err != nil {
		respondError(c, err)
		return
	}

	h.observeStep("brain_dump", res)
	c.JSON(http.StatusOK, res)
}

func (h *Handler) uploadNotes(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{Message: "missing file field", Code: "bad_request"}})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	start := time.Now()
	res, err := h.svc.UploadNotes(c.Request.Context(), c.Param("id"),
		header.Filename, data, header.Header.Get("Content-Type"))
	stepDuration.WithLabelValues("notes_upload").Observe(time.Since(start).Seconds())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type quizAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

func (h *Handler) submitQuizAnswer(c *gin.Context) {
	var req quizAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{Message: err.Error(), Code: "bad_request"}})
		return
	}

	start := time.Now()
	res, err := h.svc.SubmitQuizAnswer(c.Request.Context(), c.Param("id"), req.Answer)
	stepDuration.WithLabelValues("quiz_answer").Observe(time.Since(start).Seconds())
	if err != nil {
		respondError(c, err)
		return
	}

	h.observeStep("notes_quiz", res)
	c.JSON(http.StatusOK, res)
}

func (h *Handler) optOut(c *gin.Context) {
	status, err := h.svc.OptOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	attemptsFinished.WithLabelValues(string(status)).Inc()
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *Handler) getSummary(c *gin.Context) {
	sum, err := h.svc.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) listTopics(c *gin.Context) {
	topics, err := h.svc.ListTopics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	recent, err := h.svc.ListRecentAttempts(c.Request.Context(), 50)
	if err != nil {
		respondError(c, err)
		return
	}
	recentDTOs := make([]attemptDTO, 0, len(recent))
	for i := range recent {
		recentDTOs = append(recentDTOs, toAttemptDTO(&recent[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"total_attempts":  stats.TotalAttempts,
		"mastery_count":   stats.MasteryCount,
		"by_status":       stats.ByStatus,
		"by_mode":         stats.ByMode,
		"recent_attempts": recentDTOs,
	})
}

func (h *Handler) observeStep(mode string, res *session.StepResult) {
	turnsRecorded.WithLabelValues(mode).Inc()
	if res.Status.Terminal() {
		attemptsFinished.WithLabelValues(string(res.Status)).Inc()
	}
}
