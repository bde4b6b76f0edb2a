package api

import (
	"net/http"

	"battleacademy/internal/models"
)

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.ContentService.ListSubjects(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, subjects)
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	subject, err := s.ContentService.CreateSubject(r.Context(), models.Subject{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, subject)
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	subjectID, err := urlParamID(r, "subjectID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	quizzes, err := s.ContentService.ListQuizzes(r.Context(), subjectID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quizzes)
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	subjectID, err := urlParamID(r, "subjectID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Title      string `json:"title"`
		Difficulty string `json:"difficulty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	quiz, err := s.ContentService.CreateQuiz(r.Context(), models.Quiz{
		SubjectID:  subjectID,
		Title:      req.Title,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, quiz)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, err := urlParamID(r, "quizID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	questions, err := s.ContentService.ListQuestions(r.Context(), quizID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

func (s *Server) handleBatchQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuizID    int64             `json:"quizId"`
		Questions []models.Question `json:"questions"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	questions, err := s.ContentService.AddQuestions(r.Context(), req.QuizID, req.Questions)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"count":     len(questions),
		"questions": questions,
	})
}
