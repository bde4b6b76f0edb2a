package api

import (
	"net/http"

	"battleacademy/internal/errors"
)

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionID int64  `json:"questionId"`
		ChoiceID   string `json:"choiceId"`
		SessionID  string `json:"sessionId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.QuestionID <= 0 {
		handleError(w, r, errors.NewValidationError("questionId is required"))
		return
	}

	user := userFromContext(r.Context())
	result, err := s.AnswerService.SubmitAnswer(r.Context(), user.ID, req.QuestionID, req.ChoiceID, req.SessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
