package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/judge"
	"github.com/ChenMel27/adaptive-recall-engine/internal/notes"
	"github.com/ChenMel27/adaptive-recall-engine/internal/session"
	"github.com/ChenMel27/adaptive-recall-engine/internal/store"
)

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// respondError maps domain errors onto HTTP statuses. Collaborator failures
// are retryable gateway errors; sequence violations are bugs and surface as
// plain 500s.
func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	c.JSON(status, errorEnvelope{Error: apiError{Message: err.Error(), Code: code}})
}

func classify(err error) (int, string) {
	var (
		notFound    *store.ErrNotFound
		terminal    *attempt.ErrTerminalAttempt
		notTerminal *attempt.ErrNotTerminal
		wrongMode   *session.ErrWrongMode
		invalidMode *session.ErrInvalidMode
		dupUpload   *session.ErrNotesAlreadyUploaded
		notReady    *session.ErrQuizNotReady
		timeout     *judge.ErrCollaboratorTimeout
		collab      *judge.ErrCollaborator
		unsupported *notes.ErrUnsupportedUpload
		emptyNotes  *notes.ErrEmptyNotes
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &terminal):
		return http.StatusConflict, "session_ended"
	case errors.As(err, &notTerminal):
		return http.StatusConflict, "session_in_progress"
	case errors.As(err, &wrongMode):
		return http.StatusConflict, "wrong_mode"
	case errors.As(err, &invalidMode):
		return http.StatusBadRequest, "invalid_mode"
	case errors.As(err, &dupUpload):
		return http.StatusConflict, "notes_already_uploaded"
	case errors.As(err, &notReady):
		return http.StatusConflict, "quiz_not_ready"
	case errors.As(err, &unsupported), errors.As(err, &emptyNotes):
		return http.StatusBadRequest, "bad_upload"
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout, "collaborator_timeout"
	case errors.As(err, &collab):
		return http.StatusBadGateway, "collaborator_failure"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
