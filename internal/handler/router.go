package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/middleware"
)

type RouterDeps struct {
	Auth       *AuthHandler
	Papers     *PaperHandler
	Folders    *FolderHandler
	Labels     *LabelHandler
	Notes      *NoteHandler
	Highlights *HighlightHandler
	Comments   *CommentHandler
	Shares     *ShareHandler
	Files      *FileHandler
	AI         *AIHandler
	JWTSecret  []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.POST("/papers", deps.Papers.Create)
	authGroup.GET("/papers", deps.Papers.List)
	authGroup.GET("/papers/starred", deps.Papers.ListStarred)
	authGroup.GET("/papers/:id", deps.Papers.Get)
	authGroup.PUT("/papers/:id", deps.Papers.Update)
	authGroup.DELETE("/papers/:id", deps.Papers.Delete)
	authGroup.PUT("/papers/:id/star", deps.Papers.Star)
	authGroup.PUT("/papers/:id/move", deps.Papers.Move)
	authGroup.PUT("/papers/:id/labels", deps.Papers.ReplaceLabels)

	authGroup.GET("/papers/:id/comments", deps.Comments.ListByPaper)
	authGroup.POST("/papers/:id/comments", deps.Comments.Create)
	authGroup.GET("/papers/:id/comments/stream", deps.Comments.Stream)

	authGroup.GET("/papers/:id/notes", deps.Notes.ListByPaper)
	authGroup.POST("/papers/:id/notes", deps.Notes.Create)
	authGroup.PUT("/papers/:id/notes/:note_id", deps.Notes.Update)
	authGroup.DELETE("/papers/:id/notes/:note_id", deps.Notes.Delete)

	authGroup.GET("/papers/:id/highlights", deps.Highlights.ListByPaper)
	authGroup.POST("/highlights", deps.Highlights.Create)
	authGroup.PUT("/highlights/:id", deps.Highlights.Update)
	authGroup.DELETE("/highlights/:id", deps.Highlights.Delete)

	authGroup.POST("/folders", deps.Folders.Create)
	authGroup.GET("/folders", deps.Folders.List)
	authGroup.GET("/folders/:id", deps.Folders.Get)
	authGroup.PUT("/folders/:id", deps.Folders.Rename)
	authGroup.DELETE("/folders/:id", deps.Folders.Delete)
	authGroup.GET("/folders/:id/papers", deps.Folders.ListPapers)
	authGroup.POST("/folders/:id/share", deps.Shares.Create)
	authGroup.POST("/folders/:id/share/email", middleware.RateLimit(10*time.Second), deps.Shares.Email)

	authGroup.POST("/labels", deps.Labels.Create)
	authGroup.GET("/labels", deps.Labels.List)
	authGroup.PUT("/labels/:id", deps.Labels.Update)
	authGroup.DELETE("/labels/:id", deps.Labels.Delete)

	authGroup.POST("/files/upload", deps.Files.Upload)
	authGroup.POST("/papers/:id/analyze", middleware.RateLimit(2*time.Second), deps.AI.Analyze)
	authGroup.GET("/papers/:id/related", deps.AI.Related)

	api.GET("/shared/:token", deps.Shares.PublicGet)
	api.GET("/files/:key", deps.Files.Serve)
}
