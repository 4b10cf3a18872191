package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/judge"
	"github.com/ChenMel27/adaptive-recall-engine/internal/session"
	"github.com/ChenMel27/adaptive-recall-engine/internal/store"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

func newTestRouter(t *testing.T, adapter judge.Adapter) (*gin.Engine, *session.Service) {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, mem.SeedTopics(context.Background(), topic.Catalog))
	svc := session.New(mem, adapter, attempt.DefaultThresholds(), zap.NewNop())
	return NewRouter(NewHandler(svc, zap.NewNop())), svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createAttempt(t *testing.T, r *gin.Engine, mode string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/attempts", gin.H{
		"topic_id":     topic.Catalog[0].ID,
		"mode":         mode,
		"student_name": "Jordan",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var dto struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	return dto.ID
}

func TestStartAttemptEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, &judge.ScriptedAdapter{})

	w := doJSON(t, r, http.MethodPost, "/api/attempts", gin.H{
		"topic_id": topic.Catalog[0].ID,
		"mode":     "brain_dump",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var dto map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "active", dto["status"])
	assert.Equal(t, "brain_dump", dto["mode"])
}

func TestStartAttemptBadMode(t *testing.T) {
	r, _ := newTestRouter(t, &judge.ScriptedAdapter{})

	w := doJSON(t, r, http.MethodPost, "/api/attempts", gin.H{
		"topic_id": topic.Catalog[0].ID,
		"mode":     "pop_quiz",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartAttemptUnknownTopic(t *testing.T) {
	r, _ := newTestRouter(t, &judge.ScriptedAdapter{})

	w := doJSON(t, r, http.MethodPost, "/api/attempts", gin.H{
		"topic_id": "no-such",
		"mode":     "brain_dump",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBrainDumpEndpoint(t *testing.T) {
	adapter := &judge.ScriptedAdapter{
		Judgments: []judge.ScriptedResult[judge.Judgment]{
			{Value: judge.Judgment{
				Demonstrated:     []string{"cell membrane"},
				OverallFeedback:  "Good start!",
				FollowUpQuestion: "What about the nucleus?",
			}},
		},
	}
	r, _ := newTestRouter(t, adapter)
	id := createAttempt(t, r, "brain_dump")

	w := doJSON(t, r, http.MethodPost, "/api/attempts/"+id+"/brain-dump", gin.H{
		"text": "cells have membranes",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res session.StepResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, attempt.StatusActive, res.Status)
	assert.Equal(t, "What about the nucleus?", res.NextPrompt)
}

func TestSubmitAfterOptOutConflicts(t *testing.T) {
	r, _ := newTestRouter(t, &judge.ScriptedAdapter{})
	id := createAttempt(t, r, "brain_dump")

	w := doJSON(t, r, http.MethodPost, "/api/attempts/"+id+"/opt-out", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/attempts/"+id+"/brain-dump", gin.H{"text": "more"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "session_ended", env.Error.Code)
}

func TestSummaryWhileActiveConflicts(t *testing.T) {
	r, _ := newTestRouter(t, &judge.ScriptedAdapter{})
	id := createAttempt(t, r, "brain_dump")

	req := httptest.NewRequest(http.MethodGet, "/api/attempts/"+id+"/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCollaboratorFailureMapsToBadGateway(t *testing.T) {
	adapter := &judge.ScriptedAdapter{
		Judgments: []judge.ScriptedResult[judge.Judgment]{
			{Err: &judge.ErrCollaborator{Op: "brain-dump"}},
		},
	}
	r, _ := newTestRouter(t, adapter)
	id := createAttempt(t, r, "brain_dump")

	w := doJSON(t, r, http.MethodPost, "/api/attempts/"+id+"/brain-dump", gin.H{"text": "hi"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestNotesUploadEndpoint(t *testing.T) {
	adapter := &judge.ScriptedAdapter{
		Analyses: []judge.ScriptedResult[judge.NotesAnalysis]{
			{Value: judge.NotesAnalysis{Covered: []string{"cell membrane"}, Missing: []string{"nucleus"}}},
		},
		Quizzes: []judge.ScriptedResult[[]judge.QuizQuestion]{
			{Value: []judge.QuizQuestion{
				{Question: "Q1", TargetConcept: "nucleus"},
				{Question: "Q2", TargetConcept: "cell membrane"},
				{Question: "Q3", TargetConcept: "nucleus"},
			}},
		},
	}
	r, _ := newTestRouter(t, adapter)
	id := createAttempt(t, r, "notes_quiz")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cells.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("my notes about cells"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/attempts/"+id+"/notes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res session.NotesResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, "Q1", res.FirstQuestion)
}

func TestTopicsAndStatsEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, &judge.ScriptedAdapter{})
	createAttempt(t, r, "brain_dump")

	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var topics struct {
		Topics []topic.Topic `json:"topics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &topics))
	assert.Len(t, topics.Topics, len(topic.Catalog))

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["total_attempts"])
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, &judge.ScriptedAdapter{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
