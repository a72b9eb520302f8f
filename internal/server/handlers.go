package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mockmate/interview-cli/internal/dashboard"
	"github.com/mockmate/interview-cli/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	profile, err := s.store.GetUser(r.Context(), id.Email)
	if err != nil {
		s.log.Error("fetch profile failed", zap.String("email", id.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load user data")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	var update model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := update.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "name and education are required")
		return
	}

	if err := s.store.UpdateProfile(r.Context(), id.Email, update); err != nil {
		s.log.Error("update profile failed", zap.String("email", id.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSubmitInterview(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	var record model.InterviewRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := record.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.AppendInterview(r.Context(), id.Email, record); err != nil {
		s.log.Error("save interview failed", zap.String("email", id.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save interview")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	records, err := s.store.ListInterviews(r.Context(), id.Email)
	if err != nil {
		s.log.Error("list interviews failed", zap.String("email", id.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load interviews")
		return
	}

	role := r.URL.Query().Get("role")
	if role == "" {
		role = dashboard.RoleAll
	}
	sortKey := dashboard.SortKey(r.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = dashboard.SortByDate
	}

	view := dashboard.View(records, role, sortKey)
	writeJSON(w, http.StatusOK, map[string]any{
		"interviews":        view,
		"roles":             dashboard.Roles(records),
		"average_readiness": dashboard.AverageReadiness(view),
	})
}

func (s *Server) handleGetQuestions(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		writeError(w, http.StatusBadRequest, "role is required")
		return
	}

	qs, err := s.source.ForRole(r.Context(), role)
	if err != nil {
		s.log.Error("fetch questions failed", zap.String("role", role), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load questions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": qs})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.transcriber == nil {
		writeError(w, http.StatusServiceUnavailable, "transcription unavailable")
		return
	}
	if !s.analyzeLimiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no audio file received")
		return
	}
	defer file.Close()

	result, err := s.transcriber.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		s.log.Error("transcription failed", zap.String("file", header.Filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to analyze audio")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
