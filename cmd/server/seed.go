package main

import (
	"context"
	"fmt"

	"battleacademy/internal/auth"
	"battleacademy/internal/logger"
	"battleacademy/internal/models"
	"battleacademy/internal/repository"
	"battleacademy/internal/services"
)

// runSeed loads a demo subject with one quiz plus an admin account so a fresh
// install has something to play with.
func runSeed(ctx context.Context, users repository.UserRepository, subjects repository.SubjectRepository, quizzes repository.QuizRepository, questions repository.QuestionRepository) error {
	log := logger.Default().WithPrefix("seed")
	content := services.NewContentService(subjects, quizzes, questions)

	if err := seedAdmin(ctx, users); err != nil {
		return err
	}

	subject, err := content.CreateSubject(ctx, models.Subject{
		Name:        "Mathematics",
		Description: "Arithmetic, fractions and friends",
		Icon:        "calculator",
	})
	if err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	log.Info("created subject %q (id=%d)", subject.Name, subject.ID)

	quiz, err := content.CreateQuiz(ctx, models.Quiz{
		SubjectID:  subject.ID,
		Title:      "Arithmetic Basics",
		Difficulty: models.DifficultyEasy,
	})
	if err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	log.Info("created quiz %q (id=%d)", quiz.Title, quiz.ID)

	added, err := content.AddQuestions(ctx, quiz.ID, []models.Question{
		{
			Content: "What is 7 x 8?",
			Options: []models.Option{
				{Text: "54"},
				{Text: "56", IsCorrect: true},
				{Text: "58"},
				{Text: "64"},
			},
			Explanation: "7 x 8 = 56.",
		},
		{
			Content: "What is 1/2 + 1/4?",
			Options: []models.Option{
				{Text: "1/6"},
				{Text: "2/6"},
				{Text: "3/4", IsCorrect: true},
				{Text: "1"},
			},
			BasePoints:  15,
			Explanation: "1/2 is 2/4, and 2/4 + 1/4 = 3/4.",
		},
		{
			Content: "Which number is prime?",
			Options: []models.Option{
				{Text: "21"},
				{Text: "27"},
				{Text: "29", IsCorrect: true},
				{Text: "33"},
			},
			Explanation: "29 has no divisors besides 1 and itself.",
		},
	})
	if err != nil {
		return fmt.Errorf("add questions: %w", err)
	}
	log.Info("added %d questions", len(added))

	return nil
}

func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	log := logger.Default().WithPrefix("seed")

	existing, err := users.GetByUsername(ctx, "admin")
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if existing != nil {
		log.Info("admin account already exists, skipping")
		return nil
	}

	hash, err := auth.HashPassword("admin")
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	id, err := users.Insert(ctx, models.User{
		Username: "admin",
		Password: hash,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	log.Info("created admin account (id=%d), change the default password", id)
	return nil
}
