package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers provides the REST endpoints for categories, questions and
// quiz play.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for the trivia endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register wires the trivia routes onto mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.GetCategories)
	mux.HandleFunc("/questions", h.Questions)
	mux.HandleFunc("/questions/search", h.SearchQuestions)
	mux.HandleFunc("/questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("/category/{id}/questions", h.CategoryQuestions)
	mux.HandleFunc("/quizzes", h.PlayQuiz)
}

// GetCategories handles GET /categories.
func (h *HTTPHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// Questions dispatches GET (paginated listing) and POST (creation) on
// /questions.
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.createQuestion(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

// listQuestions handles GET /questions?page=N with the optional
// current_category and search query params carried over from the browser
// frontend contract.
func (h *HTTPHandlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	page := intQueryParam(r, "page", 1)
	currentCategory := intQueryParam(r, "current_category", 0)
	search := r.URL.Query().Get("search")

	result, err := h.svc.QuestionsPage(r.Context(), page, currentCategory, search)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"categories":       result.Categories,
		"current_category": result.CurrentCategory,
	})
}

// createQuestion handles POST /questions.
func (h *HTTPHandlers) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	if _, err := h.svc.CreateQuestion(r.Context(), req); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, map[string]interface{}{"success": true})
}

// SearchQuestions handles POST /questions/search.
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Search == nil {
		httperrors.RespondBadRequest(w)
		return
	}

	result, err := h.svc.SearchQuestions(r.Context(), *req.Search)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"categories":       result.Categories,
		"current_category": nil,
	})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, map[string]interface{}{"success": true})
}

// CategoryQuestions handles GET /category/{id}/questions.
func (h *HTTPHandlers) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	result, err := h.svc.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"current_category": nil,
	})
}

// PlayQuiz handles POST /quizzes. A null question signals the scope is
// exhausted.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	question, err := h.svc.NextQuizQuestion(r.Context(), req.QuizCategory.ID, req.PreviousQuestions)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("response encoding failed")
	}
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrInvalidInput):
		httperrors.RespondBadRequest(w)
	default:
		h.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

// intQueryParam parses an integer query parameter, falling back to def when
// absent or unparseable (the frontend sends bare numbers).
func intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
