package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/interntrack/interntrack/internal/analysis"
	"github.com/interntrack/interntrack/internal/performance"
	"github.com/interntrack/interntrack/internal/quiz"
	"github.com/interntrack/interntrack/internal/skillgap"
	"github.com/interntrack/interntrack/internal/tracker"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Tracks

func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Tracks(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": list})
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Track(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handlePutTrack(w http.ResponseWriter, r *http.Request) {
	var t skillgap.RoleRequirement
	if !decodeJSON(w, r, &t) {
		return
	}
	t.ID = chi.URLParam(r, "id")
	if err := s.svc.PutTrack(r.Context(), t); err != nil {
		respondServiceError(w, r, err)
		return
	}
	saved, err := s.svc.Track(r.Context(), t.ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// Interns

type registerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	TrackID string `json:"trackId"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := s.svc.Register(r.Context(), req.Name, req.Email, req.TrackID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, in)
}

func (s *Server) handleListInterns(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Interns(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"interns": list})
}

func (s *Server) handleGetIntern(w http.ResponseWriter, r *http.Request) {
	in, err := s.svc.Intern(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, in)
}

type onboardRequest struct {
	Skills []skillgap.SkillRecord `json:"skills"`
}

func (s *Server) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var req onboardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	a, err := s.svc.Onboard(ctx, chi.URLParam(r, "id"), req.Skills)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) handleCohort(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.Cohort(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"interns": rows})
}

// Sessions

type sessionRequest struct {
	Task      string          `json:"task"`
	Resources []string        `json:"resources"`
	TimeIn    time.Time       `json:"timeIn"`
	TimeOut   time.Time       `json:"timeOut"`
	Quiz      []quiz.QuizItem `json:"quiz"`
	Answers   map[int]int     `json:"answers"`
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	out, err := s.svc.CompleteSession(ctx, tracker.SessionInput{
		InternID:  chi.URLParam(r, "id"),
		Task:      req.Task,
		Resources: req.Resources,
		TimeIn:    req.TimeIn,
		TimeOut:   req.TimeOut,
		Quiz:      req.Quiz,
		Answers:   req.Answers,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, out)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Sessions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"sessions": list})
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Performance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleMetricHistory(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, errInvalidRequest, "days must be an integer")
			return
		}
		days = n
	}
	points, err := s.svc.MetricHistory(r.Context(), chi.URLParam(r, "id"), days)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"points": points})
}

// Stateless engines

type quizRequest struct {
	Task      string   `json:"task"`
	Resources []string `json:"resources"`
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	items, err := s.svc.StartQuiz(ctx, req.Task, req.Resources)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"questions": items})
}

type analyzeRequest struct {
	Role   skillgap.RoleRequirement `json:"role"`
	Skills []skillgap.SkillRecord   `json:"skills"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.llmContext(r)
	defer cancel()

	a, err := s.svc.Analyze(ctx, req.Role, req.Skills)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

type performanceRequest struct {
	// Sessions are expected oldest-first.
	Sessions []performance.SessionRecord `json:"sessions"`
	Analysis *analysis.Analysis          `json:"analysis"`
}

func (s *Server) handleAnalyzePerformance(w http.ResponseWriter, r *http.Request) {
	var req performanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, performance.Analyze(req.Sessions, req.Analysis))
}
