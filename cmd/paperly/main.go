package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/paperly/paperly/internal/ai"
	"github.com/paperly/paperly/internal/config"
	"github.com/paperly/paperly/internal/db"
	"github.com/paperly/paperly/internal/filestore"
	"github.com/paperly/paperly/internal/handler"
	"github.com/paperly/paperly/internal/hub"
	"github.com/paperly/paperly/internal/job"
	"github.com/paperly/paperly/internal/middleware"
	"github.com/paperly/paperly/internal/repo"
	"github.com/paperly/paperly/internal/schedule"
	"github.com/paperly/paperly/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "paperly",
		Short: "paperly backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run paperly server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	userRepo := repo.NewUserRepo(conn)
	paperRepo := repo.NewPaperRepo(conn)
	folderRepo := repo.NewFolderRepo(conn)
	labelRepo := repo.NewLabelRepo(conn)
	paperLabelRepo := repo.NewPaperLabelRepo(conn)
	noteRepo := repo.NewNoteRepo(conn)
	highlightRepo := repo.NewHighlightRepo(conn)
	commentRepo := repo.NewCommentRepo(conn)
	sharedFolderRepo := repo.NewSharedFolderRepo(conn)
	embeddingRepo := repo.NewEmbeddingRepo(conn)

	commentHub := hub.NewCommentHub()

	mailSender := service.NewEmailSender(cfg.Mail)
	jwtTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), jwtTTL)
	paperService := service.NewPaperService(paperRepo, folderRepo, labelRepo, paperLabelRepo, embeddingRepo)
	folderService := service.NewFolderService(folderRepo, paperRepo)
	labelService := service.NewLabelService(labelRepo, paperLabelRepo)
	noteService := service.NewNoteService(noteRepo, paperRepo)
	highlightService := service.NewHighlightService(highlightRepo, paperRepo)
	commentService := service.NewCommentService(commentRepo, commentHub)
	shareService := service.NewShareService(sharedFolderRepo, folderRepo, paperService, mailSender, cfg.AppBaseURL)

	var aiProvider ai.IProvider
	if cfg.AI.Provider != "" {
		provider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
		if err != nil {
			return fmt.Errorf("init ai provider: %w", err)
		}
		aiProvider = provider
	}
	aiService := service.NewAIService(aiProvider, paperRepo, cfg.AI)
	relatedService := service.NewRelatedService(embeddingRepo, paperService, aiService)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:       handler.NewAuthHandler(authService),
		Papers:     handler.NewPaperHandler(paperService),
		Folders:    handler.NewFolderHandler(folderService),
		Labels:     handler.NewLabelHandler(labelService),
		Notes:      handler.NewNoteHandler(noteService),
		Highlights: handler.NewHighlightHandler(highlightService),
		Comments:   handler.NewCommentHandler(commentService, commentHub),
		Shares:     handler.NewShareHandler(shareService),
		Files:      handler.NewFileHandler(store, cfg.AppBaseURL),
		AI:         handler.NewAIHandler(aiService, relatedService),
		JWTSecret:  []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression,
				gzip.WithExcludedPathsRegexs([]string{`.*/comments/stream$`})),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.New()
	if aiProvider != nil {
		if err := scheduler.Schedule(cfg.Jobs.EmbeddingSyncSpec, job.NewEmbeddingSyncJob(relatedService)); err != nil {
			return fmt.Errorf("schedule embedding sync: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
