package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"github.com/greenprint-labs/greenprint/internal/middleware"
	"github.com/greenprint-labs/greenprint/internal/services"
)

type Router struct {
	surveys *services.SurveyService
	auth    *services.AuthService
}

func NewRouter(store Store) *Router {
	return &Router{
		surveys: services.NewSurveyService(store),
		auth:    services.NewAuthService(store, middleware.SignToken),
	}
}

// Surveys exposes the survey service so callers (e.g. the pending-score
// relay in an embedded setup) can reuse the router's wiring.
func (rt *Router) Surveys() *services.SurveyService {
	return rt.surveys
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister) // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)       // POST
	mux.Handle("/api/surveys", middleware.RequireAuth(http.HandlerFunc(rt.handleSurveys)))
	mux.Handle("/api/surveys/", middleware.RequireAuth(http.HandlerFunc(rt.handleSurveyByID)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP status
// classes. Anything unrecognized is a generic 500 with no internal
// detail on the wire.
func writeServiceError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			writeError(w, http.StatusBadRequest, se.Message)
			return
		case services.ErrorUnauthorized:
			writeError(w, http.StatusUnauthorized, se.Message)
			return
		case services.ErrorNotFound:
			writeError(w, http.StatusNotFound, se.Message)
			return
		case services.ErrorConflict:
			writeError(w, http.StatusConflict, se.Message)
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": res.Token, "user_id": res.UserID})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": res.Token, "user_id": res.UserID})
}

// GET/POST /api/surveys
func (rt *Router) handleSurveys(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	switch r.Method {
	case http.MethodGet:
		surveys, err := rt.surveys.List(uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"surveys": surveys})
	case http.MethodPost:
		score, ok := decodeScore(w, r)
		if !ok {
			return
		}
		sv, err := rt.surveys.Create(uid, score)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"message": "Survey saved successfully", "survey": sv})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// GET/PUT/DELETE /api/surveys/{id}
func (rt *Router) handleSurveyByID(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/surveys/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Survey not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		sv, err := rt.surveys.Get(uid, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"survey": sv})
	case http.MethodPut:
		// Ownership is checked before payload validation, so a foreign
		// id reports not-found even when the score is also invalid.
		var req struct {
			FootprintScore *float64 `json:"footprintScore"`
		}
		decodeErr := json.NewDecoder(r.Body).Decode(&req)
		if _, err := rt.surveys.Get(uid, id); err != nil {
			writeServiceError(w, err)
			return
		}
		if decodeErr != nil || req.FootprintScore == nil || *req.FootprintScore != math.Trunc(*req.FootprintScore) {
			writeError(w, http.StatusBadRequest, "Valid footprint score is required")
			return
		}
		sv, err := rt.surveys.Update(uid, id, int(*req.FootprintScore))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Survey updated successfully", "survey": sv})
	case http.MethodDelete:
		if err := rt.surveys.Delete(uid, id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Survey deleted successfully"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// decodeScore reads {"footprintScore": n} and rejects missing,
// non-numeric, or fractional values before the service sees them.
// Scores are whole numbers; truncating here would let a fractional
// negative slip past the service's range check.
func decodeScore(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req struct {
		FootprintScore *float64 `json:"footprintScore"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FootprintScore == nil || *req.FootprintScore != math.Trunc(*req.FootprintScore) {
		writeError(w, http.StatusBadRequest, "Valid footprint score is required")
		return 0, false
	}
	return int(*req.FootprintScore), true
}
