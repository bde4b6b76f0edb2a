package api

import (
	"net/http"

	"battleacademy/internal/models"
)

func (s *Server) handleListMistakes(w http.ResponseWriter, r *http.Request) {
	quizID, err := queryID(r, "quizId")
	if err != nil {
		handleError(w, r, err)
		return
	}
	subjectID, err := queryID(r, "subjectId")
	if err != nil {
		handleError(w, r, err)
		return
	}

	user := userFromContext(r.Context())
	mistakes, err := s.MistakeService.ListMistakes(r.Context(), models.MistakeFilter{
		UserID:    user.ID,
		QuizID:    quizID,
		SubjectID: subjectID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, mistakes)
}
