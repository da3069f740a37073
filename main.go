// @title StudyBuddy API
// @version 1.0
// @description AI study assistant: tutoring chat, flashcards and quizzes grounded in class materials
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @basePath /
// @schemes http https

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	_ "studybuddy/docs"
	"studybuddy/internal/api"
	"studybuddy/internal/catalog"
	"studybuddy/internal/client"
	"studybuddy/internal/config"
	"studybuddy/internal/quizbank"
	"studybuddy/internal/service"
	"studybuddy/internal/store"
	"studybuddy/internal/util"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := util.InitLogger(cfg.Env, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.NewLogger("Main")
	logger.Info("Starting StudyBuddy server", "port", cfg.Port, "env", cfg.Env, "model", cfg.OpenAIModel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize RAG client; retrieval is optional
	var retriever service.Retriever
	if cfg.RetrievalEnabled() {
		ragClient := client.NewRAGClient(cfg)

		healthCtx, cancel := context.WithTimeout(ctx, cfg.RAGServerTimeout)
		if healthy, err := ragClient.Health(healthCtx); !healthy || err != nil {
			logger.Warn("RAG server health check failed", err, "url", cfg.RAGServerURL)
		} else {
			logger.Success("RAG server is healthy", "url", cfg.RAGServerURL)
		}
		cancel()

		retriever = ragClient
	} else {
		logger.Warn("RAG_SERVER_URL not set, prompts will not include class materials", nil)
	}

	// Initialize services
	classes := catalog.Default()
	openaiService := service.NewOpenAIService(cfg)
	assistant := service.NewAssistantService(cfg, openaiService, retriever, classes)

	router := api.Router(cfg, api.Services{
		Quiz:    service.NewQuizService(assistant, store.NewMemoryQuizStore()),
		Chat:    service.NewChatService(assistant, store.NewMemoryChatStore()),
		Study:   service.NewStudyService(assistant),
		Bank:    quizbank.Default(),
		Classes: classes,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("StudyBuddy server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down StudyBuddy server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", err)
		util.SyncLogger()
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("Server stopped")
}
