package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"battleacademy/internal/api"
	"battleacademy/internal/cache"
	"battleacademy/internal/config"
	"battleacademy/internal/db"
	"battleacademy/internal/logger"
	"battleacademy/internal/repository/sqlite"
	"battleacademy/internal/scoring"
	"battleacademy/internal/services"
)

func main() {
	seed := flag.Bool("seed", false, "load demo subjects, quizzes and an admin account, then exit")
	flag.Parse()

	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Battle Academy Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("redis_addr=%s", cfg.RedisAddr)
	log.Debug("question_cache_ttl=%s", cfg.QuestionCacheTTL)
	log.Debug("streak_window=%s", cfg.StreakWindow)
	log.Debug("multiplier_step=%g cap=%g", cfg.MultiplierStep, cfg.MultiplierCap)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	users := sqlite.NewUserRepository(database.DB)
	subjects := sqlite.NewSubjectRepository(database.DB)
	quizzes := sqlite.NewQuizRepository(database.DB)
	questions := sqlite.NewQuestionRepository(database.DB)
	attempts := sqlite.NewAttemptRepository(database.DB)

	if *seed {
		if err := runSeed(context.Background(), users, subjects, quizzes, questions); err != nil {
			log.Error("seed failed: %v", err)
			os.Exit(1)
		}
		log.Info("seed data loaded")
		return
	}

	var questionCache cache.QuestionCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Error("failed to connect to redis at %s: %v", cfg.RedisAddr, err)
			os.Exit(1)
		}
		log.Info("question cache backed by redis at %s", cfg.RedisAddr)
		questionCache = cache.NewRedisQuestionCache(client, questions, cfg.QuestionCacheTTL)
		defer client.Close()
	} else {
		log.Info("question cache in memory")
		questionCache = cache.NewMemoryQuestionCache(questions, cfg.QuestionCacheTTL)
	}

	policy := scoring.Policy{
		StreakWindow:   cfg.StreakWindow,
		MultiplierStep: cfg.MultiplierStep,
		MultiplierCap:  cfg.MultiplierCap,
	}

	srv := &api.Server{
		DB:                 database.DB,
		AuthService:        services.NewAuthService(users),
		AnswerService:      services.NewAnswerService(users, attempts, questionCache, policy),
		ContentService:     services.NewContentService(subjects, quizzes, questions),
		MistakeService:     services.NewMistakeService(attempts),
		LeaderboardService: services.NewLeaderboardService(users),
		JWTSecret:          cfg.JWTSecret,
		TokenTTL:           cfg.TokenTTL,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Battle Academy Server Stopped")
	log.Info("===========================================")
}
