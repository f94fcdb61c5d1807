package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/phraseflash/internal/errors"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
)

func (s *Server) handlePracticePhrases(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	languageID, err := queryInt64(r, "languageId")
	if err != nil {
		handleError(w, r, err)
		return
	}
	count, err := queryOptionalInt(r, "questionCount")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.PracticeService.ListPracticePhrases(r.Context(), user.ID, models.PracticeQuery{
		LanguageID:    languageID,
		Mode:          models.PracticeMode(r.URL.Query().Get("mode")),
		QuestionCount: count,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("returning %d practice phrases", len(session.Phrases))
	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*models.PracticeSession
	}{true, session})
}

func (s *Server) handlePracticeAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req models.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PracticeService.SubmitAnswer(r.Context(), user.ID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*models.AnswerResult
	}{true, result})
}

func (s *Server) handlePracticeStats(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	languageID, err := queryInt64(r, "languageId")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.GetPracticeStats(r.Context(), user.ID, languageID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*models.PracticeStats
	}{true, stats})
}

// handleCompare scores an attempt without recording anything.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	result, err := s.PracticeService.Compare(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, userFromContext(r.Context()))
}

type createPhraseRequest struct {
	LanguageID  int64  `json:"languageId"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

func (s *Server) handleCreatePhrase(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req createPhraseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.LanguageID <= 0 {
		handleError(w, r, errors.NewValidationError("languageId", "is required"))
		return
	}

	phrase, err := s.PhraseService.CreatePhrase(r.Context(), user.ID, req.LanguageID, req.Original, req.Translation)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, phrase)
}

func (s *Server) handlePhraseHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Warn("invalid phrase id: %s", idStr)
		handleError(w, r, errors.NewBadRequestError("invalid phrase id"))
		return
	}
	limit, err := queryOptionalInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	logs, err := s.PhraseService.GetPracticeHistory(r.Context(), user.ID, id, n)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if logs == nil {
		logs = []models.PracticeLog{}
	}
	writeJSON(w, r, http.StatusOK, logs)
}
